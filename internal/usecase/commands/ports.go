package commands

import (
	"context"
	"time"

	"hotel-reservation/internal/domain/booking"
)

type IdempotencyStatus string

const (
	IdempotencyProcessing IdempotencyStatus = "processing"
	IdempotencyCompleted  IdempotencyStatus = "completed"
)

// IdempotencyRecord remembers one submission per user and Idempotency-Key.
type IdempotencyRecord struct {
	Key         string            `json:"key"`
	UserID      string            `json:"userId"`
	Status      IdempotencyStatus `json:"status"`
	RequestHash string            `json:"requestHash"`
	BookingID   string            `json:"bookingId,omitempty"`
	PaymentURL  string            `json:"paymentUrl,omitempty"`
	ExpiresAt   time.Time         `json:"expiresAt"`
}

type BookingGateway interface {
	CreateBooking(ctx context.Context, req *booking.Request, idempotencyKey string) (*booking.Confirmation, error)
}

type IdempotencyStore interface {
	// Claim stores rec unless a record already exists for its user and key,
	// in which case the existing record is returned with claimed=false.
	Claim(ctx context.Context, rec IdempotencyRecord) (existing *IdempotencyRecord, claimed bool, err error)
	Complete(ctx context.Context, rec IdempotencyRecord) error
	// Release forgets a claim so the same key can be submitted again.
	Release(ctx context.Context, userID, key string) error
}

// NopIdempotencyStore claims every key; used when Redis is disabled.
type NopIdempotencyStore struct{}

func (NopIdempotencyStore) Claim(context.Context, IdempotencyRecord) (*IdempotencyRecord, bool, error) {
	return nil, true, nil
}

func (NopIdempotencyStore) Complete(context.Context, IdempotencyRecord) error { return nil }

func (NopIdempotencyStore) Release(context.Context, string, string) error { return nil }
