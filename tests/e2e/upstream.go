//go:build e2e

package e2e

import (
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

// FakeBookingAPI serves the three booking API endpoints the service calls.
// Every room has the same three-tier rate card and every day of every month
// has DefaultAvailable rooms unless overridden in Available.
type FakeBookingAPI struct {
	Server *httptest.Server

	mu               sync.Mutex
	DefaultAvailable int
	Available        map[string]int // YYYY-MM-DD -> rooms
	CreateMessage    string         // non-empty rejects booking/create with this message
	Bookings         []map[string]any
	IdempotencyKeys  []string
	CalendarCalls    int
	RoomCalls        int
}

func NewFakeBookingAPI() *FakeBookingAPI {
	f := &FakeBookingAPI{DefaultAvailable: 5, Available: map[string]int{}}

	r := gin.New()
	r.POST("/booking/rooms/details", f.roomDetails)
	r.POST("/room-availability/calendar", f.calendar)
	r.POST("/booking/create", f.create)
	f.Server = httptest.NewServer(r)
	return f
}

func (f *FakeBookingAPI) URL() string { return f.Server.URL }

func (f *FakeBookingAPI) Close() { f.Server.Close() }

func (f *FakeBookingAPI) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.DefaultAvailable = 5
	f.Available = map[string]int{}
	f.CreateMessage = ""
	f.Bookings = nil
	f.IdempotencyKeys = nil
	f.CalendarCalls = 0
	f.RoomCalls = 0
}

func (f *FakeBookingAPI) SetAvailable(date string, rooms int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Available[date] = rooms
}

func (f *FakeBookingAPI) RejectCreate(message string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.CreateMessage = message
}

func (f *FakeBookingAPI) BookingCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.Bookings)
}

func (f *FakeBookingAPI) LastBooking() map[string]any {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.Bookings) == 0 {
		return nil
	}
	return f.Bookings[len(f.Bookings)-1]
}

func (f *FakeBookingAPI) roomDetails(c *gin.Context) {
	var req struct {
		HotelID string `json:"hotelId"`
		RoomID  string `json:"roomId"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	f.mu.Lock()
	f.RoomCalls++
	f.mu.Unlock()

	if req.RoomID == "missing-room" {
		c.JSON(http.StatusOK, gin.H{"room": nil, "message": "Room not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"room": gin.H{
			"_id":              req.RoomID,
			"hotelId":          req.HotelID,
			"roomName":         "Deluxe Room",
			"minAdultsPerRoom": 2,
			"totalOccupancy":   3,
			"childPolicy":      "Children 12 years and above are charged as adults",
			"totalRooms":       10,
			"hotel":            gin.H{"hasGST": true, "gstPercentage": 12},
		},
		"pricing": []gin.H{
			pkg("pkg-1", 1),
			pkg("pkg-2", 2),
			pkg("pkg-4", 4),
		},
	})
}

func pkg(id string, roomCount int) gin.H {
	return gin.H{
		"_id":                    id,
		"roomCount":              roomCount,
		"ac":                     true,
		"nonac":                  true,
		"basePrice":              1000,
		"netRate":                900,
		"extraAdultWithMattress": 300,
		"extraChildWithMattress": 150,
		"minRooms":               1,
		"mealPlan":               "cp",
	}
}

func (f *FakeBookingAPI) calendar(c *gin.Context) {
	var req struct {
		Year  int `json:"year"`
		Month int `json:"month"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.CalendarCalls++

	days := make([]gin.H, 0, 31)
	for d := 1; d <= 31; d++ {
		date := dateString(req.Year, req.Month, d)
		if date == "" {
			continue
		}
		available, ok := f.Available[date]
		if !ok {
			available = f.DefaultAvailable
		}
		days = append(days, gin.H{"date": date, "available": available})
	}
	c.JSON(http.StatusOK, gin.H{"calendar": gin.H{"days": days}})
}

func (f *FakeBookingAPI) create(c *gin.Context) {
	var body map[string]any
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	if f.CreateMessage != "" {
		c.JSON(http.StatusOK, gin.H{"success": false, "message": f.CreateMessage})
		return
	}

	f.Bookings = append(f.Bookings, body)
	f.IdempotencyKeys = append(f.IdempotencyKeys, c.GetHeader("Idempotency-Key"))
	id := "bk-" + strconv.Itoa(len(f.Bookings))
	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"bookingId":  id,
		"paymentUrl": f.Server.URL + "/pay/" + id,
	})
}

// dateString returns "" for days past the end of the month
func dateString(year, month, day int) string {
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if t.Day() != day {
		return ""
	}
	return t.Format("2006-01-02")
}
