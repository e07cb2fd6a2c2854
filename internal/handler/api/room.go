package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	reqdto "hotel-reservation/internal/handler/dto/request"
	resdto "hotel-reservation/internal/handler/dto/response"
	"hotel-reservation/internal/handler/httperr"
	"hotel-reservation/internal/usecase/queries"
)

type RoomHandler struct {
	q queries.QuoteQueries
}

func NewRoomHandler(q queries.QuoteQueries) *RoomHandler {
	return &RoomHandler{q: q}
}

// @Summary Get room
// @Description Normalized room with occupancy profile and rate card
// @Tags rooms
// @Produce json
// @Param hotelId path string true "Hotel ID"
// @Param roomId path string true "Room ID"
// @Param checkIn query string false "Check-in date (YYYY-MM-DD)"
// @Param checkOut query string false "Check-out date (YYYY-MM-DD)"
// @Success 200 {object} resdto.RoomResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 502 {object} httperr.Response
// @Router /hotels/{hotelId}/rooms/{roomId} [get]
func (h *RoomHandler) Get(c *gin.Context) {
	uri, stay, ok := bindRoomRequest(c)
	if !ok {
		return
	}

	display, err := h.q.Room(c.Request.Context(), uri.HotelID, uri.RoomID, stay.CheckIn, stay.CheckOut)
	if err != nil {
		abortWithQueryError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromDisplayRoom(display))
}

// @Summary Room availability
// @Description Per-night availability of the stay and the minimum across it
// @Tags rooms
// @Produce json
// @Param hotelId path string true "Hotel ID"
// @Param roomId path string true "Room ID"
// @Param checkIn query string true "Check-in date (YYYY-MM-DD)"
// @Param checkOut query string true "Check-out date (YYYY-MM-DD)"
// @Success 200 {object} resdto.AvailabilityResponse
// @Failure 400 {object} httperr.Response
// @Router /hotels/{hotelId}/rooms/{roomId}/availability [get]
func (h *RoomHandler) Availability(c *gin.Context) {
	uri, stay, ok := bindRoomRequest(c)
	if !ok {
		return
	}
	if stay.CheckIn == "" || stay.CheckOut == "" {
		httperr.AbortWithError(c, http.StatusBadRequest, nil, "checkIn and checkOut are required", nil)
		return
	}

	view, err := h.q.Availability(c.Request.Context(), uri.HotelID, uri.RoomID, stay.CheckIn, stay.CheckOut)
	if err != nil {
		abortWithQueryError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromAvailability(view))
}

func bindRoomRequest(c *gin.Context) (reqdto.RoomURI, reqdto.StayQuery, bool) {
	var uri reqdto.RoomURI
	var stay reqdto.StayQuery
	if err := c.ShouldBindUri(&uri); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid room path", nil)
		return uri, stay, false
	}
	if err := c.ShouldBindQuery(&stay); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid stay dates", nil)
		return uri, stay, false
	}
	return uri, stay, true
}
