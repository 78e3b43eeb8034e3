package api

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	reqdto "rental-pos/internal/handler/dto/request"
	resdto "rental-pos/internal/handler/dto/response"
	"rental-pos/internal/handler/httperr"
	"rental-pos/internal/usecase/commands"
	"rental-pos/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type SessionHandler struct {
	cmds commands.SessionCommands
	q    queries.SessionQueries
}

func NewSessionHandler(cmds commands.SessionCommands, q queries.SessionQueries) *SessionHandler {
	return &SessionHandler{cmds: cmds, q: q}
}

// @Summary Start session
// @Description Open a session for a room with the item's current catalog rate
// @Tags sessions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.StartSessionRequest true "Start session request"
// @Success 201 {object} resdto.StartSessionResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /sessions [post]
func (h *SessionHandler) Start(c *gin.Context) {
	var req reqdto.StartSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	result, err := h.cmds.Start(c.Request.Context(), req.ToInput())
	if err != nil {
		switch {
		case errors.Is(err, commands.ErrItemNotFound):
			httperr.AbortWithError(c, http.StatusNotFound, err, "Zone item not found", nil)
		case errors.Is(err, commands.ErrRoomOccupied):
			httperr.AbortWithError(c, http.StatusConflict, err, "Room already has an active session", nil)
		case errors.Is(err, commands.ErrInvalidSession):
			httperr.AbortWithError(c, http.StatusUnprocessableEntity, err, "Invalid session data", nil)
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Start session failed", nil)
		}
		return
	}
	c.JSON(http.StatusCreated, resdto.FromStartResult(result))
}

// @Summary Get session
// @Description Get a session with its live accrued total
// @Tags sessions
// @Produce json
// @Security BearerAuth
// @Param id path string true "Session ID"
// @Success 200 {object} resdto.SessionResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /sessions/{id} [get]
func (h *SessionHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid id", nil)
		return
	}
	view, err := h.q.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, queries.ErrSessionNotFound) {
			httperr.AbortWithError(c, http.StatusNotFound, err, "Session not found", nil)
			return
		}
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to load session", nil)
		return
	}
	c.JSON(http.StatusOK, resdto.FromSessionView(view))
}

// @Summary List sessions
// @Description List active sessions, sessions for a room, or closed sessions in a range
// @Tags sessions
// @Produce json
// @Security BearerAuth
// @Param room query string false "Filter by room"
// @Param status query string false "active (default) or closed"
// @Param from query int false "Closed range start (unix seconds)"
// @Param to query int false "Closed range end (unix seconds)"
// @Success 200 {array} resdto.SessionListItemResponse
// @Failure 400 {object} map[string]string
// @Router /sessions [get]
func (h *SessionHandler) List(c *gin.Context) {
	ctx := c.Request.Context()

	if room := c.Query("room"); room != "" {
		items, err := h.q.ListByRoom(ctx, room)
		if err != nil {
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to list sessions", nil)
			return
		}
		c.JSON(http.StatusOK, resdto.FromSessionList(items))
		return
	}

	if c.Query("status") == "closed" {
		rng, err := h.parseClosedRange(c)
		if err != nil {
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid range", nil)
			return
		}
		items, err := h.q.ListClosed(ctx, rng)
		if err != nil {
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to list sessions", nil)
			return
		}
		c.JSON(http.StatusOK, resdto.FromSessionList(items))
		return
	}

	items, err := h.q.ListActive(ctx)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to list sessions", nil)
		return
	}
	c.JSON(http.StatusOK, resdto.FromSessionList(items))
}

// @Summary Override session rate
// @Description Apply a manual hourly rate from now on; earlier accrual is untouched
// @Tags sessions
// @Accept json
// @Security BearerAuth
// @Param id path string true "Session ID"
// @Param request body reqdto.OverrideRateRequest true "Override rate request"
// @Success 204 "No Content"
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /sessions/{id}/rate [post]
func (h *SessionHandler) OverrideRate(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid id", nil)
		return
	}
	var req reqdto.OverrideRateRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, bindErr, "Invalid request", nil)
		return
	}
	if err := h.cmds.OverrideRate(c.Request.Context(), id, req.RatePerHourCents); err != nil {
		h.abortSessionErr(c, err, "Override rate failed")
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary Add product charge
// @Description Record a product charge at the product's current price
// @Tags sessions
// @Accept json
// @Security BearerAuth
// @Param id path string true "Session ID"
// @Param request body reqdto.AddChargeRequest true "Add charge request"
// @Success 204 "No Content"
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /sessions/{id}/charges [post]
func (h *SessionHandler) AddCharge(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid id", nil)
		return
	}
	var req reqdto.AddChargeRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, bindErr, "Invalid request", nil)
		return
	}
	if err := h.cmds.AddCharge(c.Request.Context(), id, req.ToInput()); err != nil {
		h.abortSessionErr(c, err, "Add charge failed")
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary Remove product charge
// @Description Remove a recorded charge by its position in the session
// @Tags sessions
// @Security BearerAuth
// @Param id path string true "Session ID"
// @Param index path int true "Charge index"
// @Success 204 "No Content"
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /sessions/{id}/charges/{index} [delete]
func (h *SessionHandler) RemoveCharge(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid id", nil)
		return
	}
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil || index < 0 {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid index", nil)
		return
	}
	if err := h.cmds.RemoveCharge(c.Request.Context(), id, index); err != nil {
		h.abortSessionErr(c, err, "Remove charge failed")
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary Update session details
// @Description Edit customer name, room, note or payment method; allowed on closed sessions
// @Tags sessions
// @Accept json
// @Security BearerAuth
// @Param id path string true "Session ID"
// @Param request body reqdto.UpdateSessionRequest true "Update session request"
// @Success 204 "No Content"
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /sessions/{id} [patch]
func (h *SessionHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid id", nil)
		return
	}
	var req reqdto.UpdateSessionRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, bindErr, "Invalid request", nil)
		return
	}
	if err := h.cmds.UpdateDetails(c.Request.Context(), id, req.ToInput()); err != nil {
		h.abortSessionErr(c, err, "Update session failed")
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary Finalize session
// @Description Close the session and freeze its total; a second call fails
// @Tags sessions
// @Produce json
// @Security BearerAuth
// @Param id path string true "Session ID"
// @Success 200 {object} resdto.FinalizeResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /sessions/{id}/finalize [post]
func (h *SessionHandler) Finalize(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid id", nil)
		return
	}
	result, err := h.cmds.Finalize(c.Request.Context(), id)
	if err != nil {
		h.abortSessionErr(c, err, "Finalize failed")
		return
	}
	c.JSON(http.StatusOK, resdto.FromFinalizeResult(result))
}

func (h *SessionHandler) parseClosedRange(c *gin.Context) (queries.ClosedRange, error) {
	var rng queries.ClosedRange
	if from := c.Query("from"); from != "" {
		secs, err := strconv.ParseInt(from, 10, 64)
		if err != nil {
			return rng, err
		}
		t := time.Unix(secs, 0).UTC()
		rng.From = &t
	}
	if to := c.Query("to"); to != "" {
		secs, err := strconv.ParseInt(to, 10, 64)
		if err != nil {
			return rng, err
		}
		t := time.Unix(secs, 0).UTC()
		rng.To = &t
	}
	return rng, nil
}

func (h *SessionHandler) abortSessionErr(c *gin.Context, err error, msg string) {
	switch {
	case errors.Is(err, commands.ErrSessionNotFound):
		httperr.AbortWithError(c, http.StatusNotFound, err, "Session not found", nil)
	case errors.Is(err, commands.ErrProductNotFound):
		httperr.AbortWithError(c, http.StatusNotFound, err, "Product not found", nil)
	case errors.Is(err, commands.ErrChargeNotFound):
		httperr.AbortWithError(c, http.StatusNotFound, err, "Charge not found", nil)
	case errors.Is(err, commands.ErrSessionClosed):
		httperr.AbortWithError(c, http.StatusConflict, err, "Session already closed", nil)
	case errors.Is(err, commands.ErrRoomOccupied):
		httperr.AbortWithError(c, http.StatusConflict, err, "Room already has an active session", nil)
	case errors.Is(err, commands.ErrInvalidQuantity),
		errors.Is(err, commands.ErrInvalidPrice),
		errors.Is(err, commands.ErrInvalidSession),
		errors.Is(err, commands.ErrInvalidTimestamp):
		httperr.AbortWithError(c, http.StatusUnprocessableEntity, err, "Invalid session data", nil)
	default:
		httperr.AbortWithError(c, http.StatusInternalServerError, err, msg, nil)
	}
}
