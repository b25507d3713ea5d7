package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/match-seat-reservation/internal/middleware"
	"github.com/iliyamo/match-seat-reservation/internal/model"
	"github.com/iliyamo/match-seat-reservation/internal/service"
)

// SeatHandler exposes the seat service over HTTP.  Hold and confirm assume
// JWTAuth has stored the claimant; admin routes assume the ADMIN role.
type SeatHandler struct {
	svc *service.SeatService
}

// NewSeatHandler panics when svc is nil.
func NewSeatHandler(svc *service.SeatService) *SeatHandler {
	if svc == nil {
		panic("nil service passed to NewSeatHandler")
	}
	return &SeatHandler{svc: svc}
}

type seatsBody struct {
	SeatIDs []string `json:"seat_ids"`
}

type releaseBody struct {
	UserID  string   `json:"user_id"`
	SeatIDs []string `json:"seat_ids"`
}

func (h *SeatHandler) claimant(c echo.Context) (string, bool) {
	uid := middleware.UserID(c)
	return uid, uid != ""
}

// HoldSeats handles POST /v1/matches/:id/hold.  201 with the held seats on
// success, 409 when any seat is taken, 410 when the match is closed.
func (h *SeatHandler) HoldSeats(c echo.Context) error {
	uid, ok := h.claimant(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	matchID, err := parseMatchID(c)
	if err != nil {
		return writeError(c, err)
	}
	var body seatsBody
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	res, err := h.svc.HoldSeats(c.Request().Context(), model.HoldRequest{
		MatchID:  matchID,
		Claimant: uid,
		SeatIDs:  body.SeatIDs,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, res)
}

// ConfirmSeats handles POST /v1/matches/:id/confirm.  Confirming the same
// held seats twice returns 200 both times.
func (h *SeatHandler) ConfirmSeats(c echo.Context) error {
	uid, ok := h.claimant(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	matchID, err := parseMatchID(c)
	if err != nil {
		return writeError(c, err)
	}
	var body seatsBody
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	res, err := h.svc.ConfirmSeats(c.Request().Context(), model.ConfirmRequest{
		MatchID:  matchID,
		Claimant: uid,
		SeatIDs:  body.SeatIDs,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, res)
}

// MatchStatus handles GET /v1/matches/:id/status.
func (h *SeatHandler) MatchStatus(c echo.Context) error {
	matchID, err := parseMatchID(c)
	if err != nil {
		return writeError(c, err)
	}
	st, err := h.svc.MatchStatus(c.Request().Context(), matchID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, st)
}

// ListMatches handles GET /v1/matches.
func (h *SeatHandler) ListMatches(c echo.Context) error {
	ms, err := h.svc.ListMatches(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"items": ms, "count": len(ms)})
}

// ReleaseSeats handles POST /v1/admin/matches/:id/release.  The body names
// the claimant whose holds are dropped; every seat must still be theirs.
func (h *SeatHandler) ReleaseSeats(c echo.Context) error {
	matchID, err := parseMatchID(c)
	if err != nil {
		return writeError(c, err)
	}
	var body releaseBody
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if err := h.svc.ReleaseSeats(c.Request().Context(), model.ReleaseRequest{
		MatchID:  matchID,
		Claimant: strings.TrimSpace(body.UserID),
		SeatIDs:  body.SeatIDs,
	}); err != nil {
		return writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// Reconcile handles POST /v1/admin/reconcile.  A partial failure still
// reports what was checked and written.
func (h *SeatHandler) Reconcile(c echo.Context) error {
	rep, err := h.svc.Reconcile(c.Request().Context())
	body := echo.Map{"checked": rep.Checked, "written": rep.Written, "failed": rep.Failed}
	if err != nil {
		c.Logger().Errorf("reconcile: %v", err)
		body["error"] = err.Error()
		return c.JSON(http.StatusServiceUnavailable, body)
	}
	return c.JSON(http.StatusOK, body)
}
