//go:build unit

package bookingapi_test

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hotel-reservation/internal/domain/availability"
	"hotel-reservation/internal/domain/booking"
	"hotel-reservation/internal/domain/stay"
	"hotel-reservation/internal/infra"
	"hotel-reservation/internal/infra/bookingapi"
	"hotel-reservation/internal/pkg/config"
)

func newClient(t *testing.T, handler http.HandlerFunc) *bookingapi.Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	cfg := config.BookingAPIConfig{BaseURL: srv.URL + "/", APIKey: "k-1", Timeout: 2 * time.Second}
	return bookingapi.NewClient(cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func decodeBody(t *testing.T, r *http.Request) map[string]any {
	t.Helper()
	var m map[string]any
	require.NoError(t, json.NewDecoder(r.Body).Decode(&m))
	return m
}

func TestRoomDetails(t *testing.T) {
	dates, err := stay.ParseDateRange("2025-03-10", "2025-03-12")
	require.NoError(t, err)

	t.Run("maps room, pricing and hotel tax", func(t *testing.T) {
		client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/booking/rooms/details", r.URL.Path)
			assert.Equal(t, "k-1", r.Header.Get("X-Api-Key"))
			body := decodeBody(t, r)
			assert.Equal(t, "h1", body["hotelId"])
			assert.Equal(t, "r1", body["roomId"])
			filter := body["dateFilter"].(map[string]any)
			assert.EqualValues(t, dates.FromMillis(), filter["from"])
			assert.EqualValues(t, dates.ToMillis(), filter["to"])

			_, _ = io.WriteString(w, `{
				"room": {"_id":"r1","roomName":"Deluxe","minAdultsPerRoom":2,"totalOccupancy":3,
					"childPolicy":"Children above 10 years are adults","totalRooms":8,
					"hotel":{"hasGST":true,"gstPercentage":12}},
				"pricing": [{"_id":"p1","roomCount":1,"ac":true,"basePrice":2000,"mealPlan":" cp "}],
				"package": [{"_id":"x1","roomCount":1,"basePrice":1}]
			}`)
		})

		got, err := client.RoomDetails(context.Background(), bookingapi.RoomQuery{HotelID: "h1", RoomID: "r1", Dates: dates})
		require.NoError(t, err)
		assert.Equal(t, "r1", got.ID)
		assert.Equal(t, "h1", got.HotelID)
		assert.Equal(t, 2, got.MinAdults)
		assert.Equal(t, 3, got.TotalOccupancy)
		assert.True(t, got.Tax.HasGST)
		assert.Equal(t, 12.0, got.Tax.GSTPercentage)
		require.Len(t, got.Pricing, 1)
		assert.Equal(t, "CP", got.Pricing[0].MealPlan)
		require.Len(t, got.Packages, 1)
	})

	t.Run("missing room is not found", func(t *testing.T) {
		client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = io.WriteString(w, `{"message":"no room"}`)
		})
		_, err := client.RoomDetails(context.Background(), bookingapi.RoomQuery{HotelID: "h1", RoomID: "r1", Dates: dates})
		require.Error(t, err)
		assert.True(t, infra.IsKind(err, infra.KindNotFound))
	})

	t.Run("404 is not found", func(t *testing.T) {
		client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		})
		_, err := client.RoomDetails(context.Background(), bookingapi.RoomQuery{HotelID: "h1", RoomID: "r1"})
		assert.True(t, infra.IsKind(err, infra.KindNotFound))
	})

	t.Run("undecodable body is a bad response", func(t *testing.T) {
		client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = io.WriteString(w, `not-json`)
		})
		_, err := client.RoomDetails(context.Background(), bookingapi.RoomQuery{HotelID: "h1", RoomID: "r1"})
		assert.True(t, infra.IsKind(err, infra.KindBadResponse))
	})
}

func TestMonthCalendar(t *testing.T) {
	client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/room-availability/calendar", r.URL.Path)
		body := decodeBody(t, r)
		assert.Equal(t, "r1", body["roomTypeId"])
		assert.EqualValues(t, 2025, body["year"])
		assert.EqualValues(t, 3, body["month"])
		_, _ = io.WriteString(w, `{"calendar":{"days":[
			{"date":"2025-03-01","available":4},
			{"date":"garbage","available":9},
			{"date":"2025-03-02T00:00:00Z","available":-1}
		]}}`)
	})

	days, err := client.MonthCalendar(context.Background(), "h1", "r1", availability.Month{Year: 2025, Month: time.March})
	require.NoError(t, err)
	require.Len(t, days, 2)
	assert.Equal(t, 4, days[0].Available)
	assert.Equal(t, 0, days[1].Available)
	assert.Equal(t, time.Date(2025, 3, 2, 0, 0, 0, 0, time.UTC), days[1].Date)
}

func TestCreateBooking(t *testing.T) {
	req := &booking.Request{
		HotelID:     "h1",
		UserID:      "u1",
		Guest:       booking.GuestForm{FirstName: "Asha", LastName: "Rao", Email: "a@example.com", Phone: "99"},
		CheckIn:     "2025-03-10",
		CheckOut:    "2025-03-12",
		Rooms:       []booking.RoomRequirement{{RoomID: "r1", PackageID: "p1", RoomCount: 2, Nights: 2, RatePerNight: 2000}},
		TotalAmount: 8000,
		Remarks:     "late arrival",
	}

	t.Run("returns payment url and forwards idempotency key", func(t *testing.T) {
		client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/booking/create", r.URL.Path)
			assert.Equal(t, "idem-1", r.Header.Get("Idempotency-Key"))
			body := decodeBody(t, r)
			assert.Equal(t, "Asha", body["firstName"])
			assert.Equal(t, "late arrival", body["remarks"])
			rooms := body["roomRequirements"].([]any)
			require.Len(t, rooms, 1)
			assert.EqualValues(t, 2, rooms[0].(map[string]any)["noOfRooms"])
			_, _ = io.WriteString(w, `{"success":true,"bookingId":"b1","paymentUrl":"https://pay/b1"}`)
		})

		got, err := client.CreateBooking(context.Background(), req, "idem-1")
		require.NoError(t, err)
		assert.Equal(t, "https://pay/b1", got.PaymentURL)
		assert.Equal(t, "b1", got.BookingID)
	})

	t.Run("server message survives a rejection", func(t *testing.T) {
		client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = io.WriteString(w, `{"message":"Rooms sold out"}`)
		})

		_, err := client.CreateBooking(context.Background(), req, "")
		require.Error(t, err)
		assert.True(t, infra.IsKind(err, infra.KindRejected))
		assert.Equal(t, "Rooms sold out", infra.ServerMessage(err))
	})

	t.Run("success false is a rejection", func(t *testing.T) {
		client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = io.WriteString(w, `{"success":false,"message":"Invalid user"}`)
		})

		_, err := client.CreateBooking(context.Background(), req, "")
		assert.True(t, infra.IsKind(err, infra.KindRejected))
		assert.Equal(t, "Invalid user", infra.ServerMessage(err))
	})

	t.Run("5xx is an upstream failure", func(t *testing.T) {
		client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		})

		_, err := client.CreateBooking(context.Background(), req, "")
		assert.True(t, infra.IsKind(err, infra.KindUpstreamFailure))
		assert.Empty(t, infra.ServerMessage(err))
	})

	t.Run("cancelled context is not an upstream failure", func(t *testing.T) {
		client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
			<-r.Context().Done()
		})
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := client.CreateBooking(ctx, req, "")
		require.Error(t, err)
		assert.ErrorIs(t, err, context.Canceled)
		assert.False(t, infra.IsKind(err, infra.KindUpstreamFailure))
	})
}
