package ratecard

import "sort"

// SelectPackage picks the applicable package for the requested room count.
//
// An explicit package id wins when it exists and agrees with a non-nil AC
// preference. Otherwise the card is filtered by AC preference, an exact
// room-count match is preferred, then the smallest tier at or above the
// request, then the largest tier. When the AC filter leaves nothing the
// cheapest package of the whole card is returned. The bool is false only for
// an empty card.
func SelectPackage(card Card, roomCount int, acPreference *bool, explicitID string) (Package, bool) {
	if card.IsEmpty() {
		return Package{}, false
	}

	if explicitID != "" {
		if p, ok := card.Find(explicitID); ok {
			if acPreference == nil || p.MatchesAC(*acPreference) {
				return p, true
			}
		}
	}

	candidates := card
	if acPreference != nil {
		candidates = filterAC(card, *acPreference)
	}
	if len(candidates) == 0 {
		return cheapest(card), true
	}

	for _, p := range candidates {
		if p.RoomCount == roomCount {
			return p, true
		}
	}

	sorted := make(Card, len(candidates))
	copy(sorted, candidates)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].RoomCount < sorted[j].RoomCount
	})
	for _, p := range sorted {
		if p.RoomCount >= roomCount {
			return p, true
		}
	}
	return sorted[len(sorted)-1], true
}

func filterAC(card Card, preferAC bool) Card {
	out := make(Card, 0, len(card))
	for _, p := range card {
		if p.MatchesAC(preferAC) {
			out = append(out, p)
		}
	}
	return out
}

// ties keep card order
func cheapest(card Card) Package {
	best := card[0]
	for _, p := range card[1:] {
		if p.BasePrice < best.BasePrice {
			best = p
		}
	}
	return best
}
