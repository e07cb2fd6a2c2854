package api

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	reqdto "hotel-reservation/internal/handler/dto/request"
	resdto "hotel-reservation/internal/handler/dto/response"
	"hotel-reservation/internal/handler/httperr"
	"hotel-reservation/internal/handler/middleware"
	"hotel-reservation/internal/pkg/errs"
	"hotel-reservation/internal/usecase/commands"
	"hotel-reservation/internal/usecase/queries"
)

const idempotencyHeader = "Idempotency-Key"

var errInvalidIdempotencyKey = errs.New("invalid idempotency key format")

type ReservationHandler struct {
	cmds commands.ReservationCommands
	q    queries.QuoteQueries
}

func NewReservationHandler(cmds commands.ReservationCommands, q queries.QuoteQueries) *ReservationHandler {
	return &ReservationHandler{cmds: cmds, q: q}
}

// @Summary Quote reservation
// @Description Price the review form snapshot: occupancy, room count, availability ceiling, rate package and breakdown
// @Tags reservations
// @Accept json
// @Produce json
// @Param X-Review-Session header string false "Review page session; older quotes of the same session answer 409"
// @Param request body reqdto.QuoteRequest true "Review form snapshot"
// @Success 200 {object} resdto.QuoteResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Failure 429 {object} httperr.Response
// @Failure 502 {object} httperr.Response
// @Router /reservations/quote [post]
func (h *ReservationHandler) Quote(c *gin.Context) {
	var req reqdto.QuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}

	userID, _ := middleware.GetUserID(c)
	session := strings.TrimSpace(c.GetHeader(middleware.ReviewSessionHeader))

	quote, err := h.q.Quote(c.Request.Context(), req.ToInput(session, userID))
	if err != nil {
		abortWithQueryError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromQuote(quote))
}

// @Summary Submit reservation
// @Description Recompute the quote, build the booking request and create the booking; returns the payment URL
// @Tags reservations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param Idempotency-Key header string false "UUID collapsing duplicate submissions"
// @Param request body reqdto.SubmitReservationRequest true "Review form snapshot with guest details"
// @Success 201 {object} resdto.SubmitResponse
// @Failure 400 {object} httperr.Response
// @Failure 401 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Failure 422 {object} httperr.Response
// @Failure 502 {object} httperr.Response
// @Router /reservations [post]
func (h *ReservationHandler) Submit(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, nil, "Unauthorized", nil)
		return
	}

	key, err := idempotencyKey(c)
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid Idempotency-Key header", nil)
		return
	}

	var req reqdto.SubmitReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}

	result, err := h.cmds.Submit(c.Request.Context(), req.ToInput(userID, key))
	if err != nil {
		abortWithSubmitError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resdto.FromSubmitResult(result))
}

func idempotencyKey(c *gin.Context) (string, error) {
	raw := strings.TrimSpace(c.GetHeader(idempotencyHeader))
	if raw == "" {
		return "", nil
	}
	key, err := uuid.Parse(raw)
	if err != nil {
		return "", errs.Mark(err, errInvalidIdempotencyKey)
	}
	return key.String(), nil
}

func abortWithQueryError(c *gin.Context, err error) {
	switch {
	case errs.Is(err, queries.ErrInvalidDates):
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid stay dates", nil)
	case errs.Is(err, queries.ErrStaleQuote):
		httperr.AbortWithError(c, http.StatusConflict, err, "Quote superseded by a newer request", nil)
	case errs.Is(err, queries.ErrRoomNotFound):
		httperr.AbortWithError(c, http.StatusNotFound, err, "Room not found", nil)
	case errs.Is(err, queries.ErrRoomLookupFailed):
		httperr.AbortWithError(c, http.StatusBadGateway, err, "Room details could not be loaded", nil)
	default:
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
	}
}

func abortWithSubmitError(c *gin.Context, err error) {
	var blocked *commands.BlockedError
	var failure *commands.FailureError
	switch {
	case errors.As(err, &blocked):
		httperr.AbortWithError(c, http.StatusUnprocessableEntity, err, "Reservation cannot be submitted yet",
			gin.H{"blocking": resdto.BlockReasons(blocked.Reasons)})
	case errors.As(err, &failure):
		httperr.AbortWithError(c, http.StatusBadGateway, err, failure.Message, nil)
	case errs.Is(err, commands.ErrSubmissionInProgress):
		httperr.AbortWithError(c, http.StatusConflict, err, "Reservation is already being submitted", nil)
	case errs.Is(err, commands.ErrIdempotencyKeyReused):
		httperr.AbortWithError(c, http.StatusConflict, err, "Idempotency-Key was used for a different reservation", nil)
	default:
		abortWithQueryError(c, err)
	}
}
