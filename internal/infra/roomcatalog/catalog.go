package roomcatalog

import (
	"context"
	"log/slog"
	"os"

	"github.com/goccy/go-json"

	"hotel-reservation/internal/domain/room"
	"hotel-reservation/internal/infra"
	"hotel-reservation/internal/infra/bookingapi"
	"hotel-reservation/internal/pkg/errs"
)

type RoomSource interface {
	RoomDetails(ctx context.Context, q bookingapi.RoomQuery) (room.APIRoom, error)
}

type staticRoom struct {
	ID       string   `json:"id"`
	HotelID  string   `json:"hotelId"`
	Name     string   `json:"name"`
	Capacity int      `json:"capacity"`
	Price    float64  `json:"price"`
	Images   []string `json:"images"`
}

// Catalog resolves a room from the booking API, falling back to the static
// display catalog when the API has no record of it.
type Catalog struct {
	live   RoomSource
	static map[string]room.FallbackRoom
	logger *slog.Logger
}

func New(live RoomSource, static []room.FallbackRoom, logger *slog.Logger) *Catalog {
	idx := make(map[string]room.FallbackRoom, len(static))
	for _, r := range static {
		idx[staticKey(r.HotelID, r.ID)] = r
	}
	return &Catalog{live: live, static: idx, logger: logger}
}

// LoadStatic reads the fallback catalog. An empty path yields no rooms.
func LoadStatic(path string) ([]room.FallbackRoom, error) {
	if path == "" {
		return nil, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, errs.Wrapf(err, "read static rooms %s", path)
	}
	var rows []staticRoom
	if err := json.Unmarshal(raw, &rows); err != nil {
		return nil, errs.Wrapf(err, "decode static rooms %s", path)
	}
	out := make([]room.FallbackRoom, 0, len(rows))
	for _, r := range rows {
		out = append(out, room.FallbackRoom{
			ID:       r.ID,
			HotelID:  r.HotelID,
			Name:     r.Name,
			Capacity: r.Capacity,
			Price:    r.Price,
			Images:   r.Images,
		})
	}
	return out, nil
}

func (c *Catalog) Lookup(ctx context.Context, q bookingapi.RoomQuery) (room.Source, error) {
	apiRoom, err := c.live.RoomDetails(ctx, q)
	if err == nil {
		return room.Live{Room: apiRoom}, nil
	}
	if !infra.IsKind(err, infra.KindNotFound) {
		return nil, err
	}

	if fb, ok := c.static[staticKey(q.HotelID, q.RoomID)]; ok {
		c.logger.Info("serving static room",
			slog.String("hotel_id", q.HotelID),
			slog.String("room_id", q.RoomID))
		return room.Static{Room: fb}, nil
	}
	return nil, err
}

func staticKey(hotelID, roomID string) string {
	return hotelID + "/" + roomID
}
