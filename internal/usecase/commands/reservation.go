package commands

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"

	"hotel-reservation/internal/domain/booking"
	"hotel-reservation/internal/infra"
	"hotel-reservation/internal/pkg/clock"
	"hotel-reservation/internal/pkg/errs"
	"hotel-reservation/internal/usecase/availability"
	"hotel-reservation/internal/usecase/queries"
)

const (
	idempotencyTTL = 24 * time.Hour

	// FallbackFailureMessage is shown when the booking API gives no reason.
	FallbackFailureMessage = "Booking could not be created"
)

var (
	ErrSubmissionBlocked    = errs.New("submission blocked")
	ErrSubmissionFailed     = errs.New("booking could not be created")
	ErrSubmissionInProgress = errs.New("submission already in progress")
	ErrIdempotencyKeyReused = errs.New("idempotency key reused with a different request")
)

// BlockedError lists why the snapshot cannot be submitted.
type BlockedError struct {
	Reasons []booking.BlockReason
}

func (e *BlockedError) Error() string {
	parts := make([]string, len(e.Reasons))
	for i, r := range e.Reasons {
		parts[i] = string(r)
	}
	return "submission blocked: " + strings.Join(parts, ", ")
}

func (e *BlockedError) Is(target error) bool {
	return target == ErrSubmissionBlocked
}

// FailureError carries the message to show the guest after a failed submission.
type FailureError struct {
	Message string
	cause   error
}

func (e *FailureError) Error() string {
	if e.cause != nil {
		return e.Message + ": " + e.cause.Error()
	}
	return e.Message
}

func (e *FailureError) Unwrap() error { return e.cause }

func (e *FailureError) Is(target error) bool {
	return target == ErrSubmissionFailed
}

type SubmitInput struct {
	Quote          queries.QuoteInput
	Guest          booking.GuestForm
	IdempotencyKey string
}

type SubmitResult struct {
	BookingID      string
	PaymentURL     string
	IdempotencyKey string
	Replayed       bool
}

type ReservationCommands interface {
	Submit(ctx context.Context, in SubmitInput) (*SubmitResult, error)
}

type reservationCommandsImpl struct {
	quotes      queries.QuoteQueries
	gateway     BookingGateway
	idempotency IdempotencyStore
	clock       clock.Clock
	logger      *slog.Logger
}

func NewReservationCommands(
	quotes queries.QuoteQueries,
	gateway BookingGateway,
	idempotency IdempotencyStore,
	clk clock.Clock,
	logger *slog.Logger,
) ReservationCommands {
	return &reservationCommandsImpl{
		quotes:      quotes,
		gateway:     gateway,
		idempotency: idempotency,
		clock:       clk,
		logger:      logger,
	}
}

func (uc *reservationCommandsImpl) Submit(ctx context.Context, in SubmitInput) (*SubmitResult, error) {
	snapshot := in.Quote
	// submissions never race against each other's quotes
	snapshot.SessionID = ""

	// the ceiling is re-read from the booking API, never from cache
	quote, err := uc.quotes.Quote(availability.WithFreshCalendar(ctx), snapshot)
	if err != nil {
		return nil, err
	}
	if len(quote.Blocking) > 0 {
		return nil, &BlockedError{Reasons: quote.Blocking}
	}

	req, err := booking.Build(booking.BuildInput{
		HotelID:   snapshot.HotelID,
		UserID:    snapshot.UserID,
		RoomID:    snapshot.RoomID,
		Guest:     in.Guest,
		Guests:    snapshot.Guests,
		Occupancy: quote.Occupancy,
		Split:     quote.Split,
		Breakdown: quote.Breakdown,
		Package:   quote.Package,
		Dates:     quote.Dates,
	})
	if err != nil {
		return nil, &BlockedError{Reasons: []booking.BlockReason{blockReasonFor(err)}}
	}

	key := in.IdempotencyKey
	if key == "" {
		key = uuid.NewString()
	}

	rec := IdempotencyRecord{
		Key:         key,
		UserID:      snapshot.UserID,
		Status:      IdempotencyProcessing,
		RequestHash: requestHash(req),
		ExpiresAt:   uc.clock.Now().Add(idempotencyTTL),
	}
	existing, claimed, err := uc.idempotency.Claim(ctx, rec)
	if err != nil {
		uc.logger.Warn("idempotency claim failed, submitting without it",
			slog.String("user_id", rec.UserID),
			slog.String("error", err.Error()))
		claimed = true
	}
	if !claimed {
		return replay(existing, rec)
	}

	conf, err := uc.gateway.CreateBooking(ctx, req, key)
	if err != nil {
		uc.release(rec)
		if ctx.Err() != nil {
			return nil, errs.Wrap(ctx.Err(), "submission abandoned")
		}
		return nil, &FailureError{Message: failureMessage(infra.ServerMessage(err)), cause: err}
	}
	if strings.TrimSpace(conf.PaymentURL) == "" {
		uc.release(rec)
		return nil, &FailureError{Message: failureMessage(conf.Message)}
	}

	rec.Status = IdempotencyCompleted
	rec.BookingID = conf.BookingID
	rec.PaymentURL = conf.PaymentURL
	if err := uc.idempotency.Complete(ctx, rec); err != nil {
		uc.logger.Warn("idempotency completion failed",
			slog.String("user_id", rec.UserID),
			slog.String("booking_id", rec.BookingID),
			slog.String("error", err.Error()))
	}

	uc.logger.Info("booking created",
		slog.String("hotel_id", req.HotelID),
		slog.String("booking_id", conf.BookingID),
		slog.Float64("total", req.TotalAmount))

	return &SubmitResult{
		BookingID:      conf.BookingID,
		PaymentURL:     conf.PaymentURL,
		IdempotencyKey: key,
	}, nil
}

// release runs detached from ctx so an abandoned request still frees its key.
func (uc *reservationCommandsImpl) release(rec IdempotencyRecord) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := uc.idempotency.Release(ctx, rec.UserID, rec.Key); err != nil {
		uc.logger.Warn("idempotency release failed",
			slog.String("user_id", rec.UserID),
			slog.String("error", err.Error()))
	}
}

func replay(existing *IdempotencyRecord, rec IdempotencyRecord) (*SubmitResult, error) {
	if existing == nil {
		return nil, ErrSubmissionInProgress
	}
	if existing.RequestHash != rec.RequestHash {
		return nil, ErrIdempotencyKeyReused
	}
	if existing.Status != IdempotencyCompleted {
		return nil, ErrSubmissionInProgress
	}
	return &SubmitResult{
		BookingID:      existing.BookingID,
		PaymentURL:     existing.PaymentURL,
		IdempotencyKey: existing.Key,
		Replayed:       true,
	}, nil
}

func failureMessage(server string) string {
	if s := strings.TrimSpace(server); s != "" {
		return s
	}
	return FallbackFailureMessage
}

func blockReasonFor(err error) booking.BlockReason {
	switch err {
	case booking.ErrMissingHotel:
		return booking.BlockMissingHotel
	case booking.ErrMissingUser:
		return booking.BlockMissingUser
	case booking.ErrMissingRoom:
		return booking.BlockMissingRoom
	case booking.ErrMissingPackage:
		return booking.BlockRateCardEmpty
	default:
		return booking.BlockMissingDates
	}
}

func requestHash(req *booking.Request) string {
	data, err := json.Marshal(req)
	if err != nil {
		data = fmt.Appendf(nil, "%+v", *req)
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
