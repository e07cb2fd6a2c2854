package bookingapi

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/goccy/go-json"

	"hotel-reservation/internal/domain/availability"
	"hotel-reservation/internal/domain/booking"
	"hotel-reservation/internal/domain/room"
	"hotel-reservation/internal/domain/stay"
	"hotel-reservation/internal/infra"
	"hotel-reservation/internal/pkg/config"
	"hotel-reservation/internal/pkg/errs"
)

const (
	pathRoomDetails = "/booking/rooms/details"
	pathCalendar    = "/room-availability/calendar"
	pathCreate      = "/booking/create"

	// packageTypeRoomRates asks the upstream for the full rate card of the room.
	packageTypeRoomRates = "room_rates"

	maxErrorBody = 64 << 10
)

type RoomQuery struct {
	HotelID string
	RoomID  string
	Dates   stay.DateRange
}

type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
	logger  *slog.Logger
}

func NewClient(cfg config.BookingAPIConfig, logger *slog.Logger) *Client {
	return NewClientWithHTTP(cfg, &http.Client{Timeout: cfg.Timeout}, logger)
}

func NewClientWithHTTP(cfg config.BookingAPIConfig, hc *http.Client, logger *slog.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:  cfg.APIKey,
		http:    hc,
		logger:  logger,
	}
}

func (c *Client) RoomDetails(ctx context.Context, q RoomQuery) (room.APIRoom, error) {
	body := roomDetailsRequest{
		HotelID:           q.HotelID,
		RoomID:            q.RoomID,
		PackageType:       packageTypeRoomRates,
		ShowRoomsWithRate: true,
	}
	if !q.Dates.IsZero() {
		body.DateFilter = dateFilter{From: q.Dates.FromMillis(), To: q.Dates.ToMillis()}
	}

	var resp roomDetailsResponse
	if err := c.post(ctx, pathRoomDetails, body, &resp, nil); err != nil {
		return room.APIRoom{}, err
	}
	if resp.Room == nil || resp.Room.ID == "" {
		return room.APIRoom{}, infra.WrapUpstreamErr(c.logger, infra.KindNotFound, http.StatusOK, resp.Message,
			fmt.Sprintf("room %s of hotel %s not in details response", q.RoomID, q.HotelID), nil)
	}
	return resp.toDomain(q.HotelID), nil
}

func (c *Client) MonthCalendar(ctx context.Context, hotelID, roomID string, month availability.Month) ([]availability.Day, error) {
	body := calendarRequest{
		HotelID:    hotelID,
		RoomTypeID: roomID,
		Year:       month.Year,
		Month:      int(month.Month),
	}

	var resp calendarResponse
	if err := c.post(ctx, pathCalendar, body, &resp, nil); err != nil {
		return nil, err
	}
	return resp.toDomain(), nil
}

// CreateBooking posts the request once. A non-empty idempotencyKey is forwarded
// so the upstream can collapse duplicate submissions.
func (c *Client) CreateBooking(ctx context.Context, req *booking.Request, idempotencyKey string) (*booking.Confirmation, error) {
	headers := map[string]string{}
	if idempotencyKey != "" {
		headers["Idempotency-Key"] = idempotencyKey
	}

	var resp createBookingResponse
	if err := c.post(ctx, pathCreate, fromBookingRequest(req), &resp, headers); err != nil {
		return nil, err
	}
	if resp.Success != nil && !*resp.Success {
		return nil, infra.WrapUpstreamErr(c.logger, infra.KindRejected, http.StatusOK, resp.Message,
			"booking rejected", nil)
	}
	return &booking.Confirmation{
		BookingID:  resp.BookingID,
		PaymentURL: resp.PaymentURL,
		Message:    resp.Message,
	}, nil
}

func (c *Client) post(ctx context.Context, path string, in, out any, headers map[string]string) error {
	payload, err := json.Marshal(in)
	if err != nil {
		return errs.Wrapf(err, "encode %s request", path)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return errs.Wrapf(err, "build %s request", path)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set("X-Api-Key", c.apiKey)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	res, err := c.http.Do(req)
	if err != nil {
		// caller went away; not an upstream fault
		if ctxErr := ctx.Err(); ctxErr != nil {
			return errs.Wrapf(ctxErr, "%s cancelled", path)
		}
		return infra.WrapUpstreamErr(c.logger, infra.KindUpstreamFailure, 0, "", "call "+path, err)
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return c.statusError(path, res)
	}

	if err := json.NewDecoder(res.Body).Decode(out); err != nil {
		return infra.WrapUpstreamErr(c.logger, infra.KindBadResponse, res.StatusCode, "", "decode "+path, err)
	}
	return nil
}

func (c *Client) statusError(path string, res *http.Response) error {
	raw, _ := io.ReadAll(io.LimitReader(res.Body, maxErrorBody))
	var body errorResponse
	_ = json.Unmarshal(raw, &body)

	kind := infra.KindUpstreamFailure
	switch {
	case res.StatusCode == http.StatusNotFound:
		kind = infra.KindNotFound
	case res.StatusCode >= 400 && res.StatusCode < 500:
		kind = infra.KindRejected
	}
	return infra.WrapUpstreamErr(c.logger, kind, res.StatusCode, body.text(),
		fmt.Sprintf("%s returned %d", path, res.StatusCode), nil)
}
