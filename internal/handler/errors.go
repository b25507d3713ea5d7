package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/match-seat-reservation/internal/reservation"
)

// statusFor maps a reservation error kind to an HTTP status.
func statusFor(k reservation.Kind) int {
	switch k {
	case reservation.KindValidation, reservation.KindNotHeld:
		return http.StatusBadRequest
	case reservation.KindNotFound:
		return http.StatusNotFound
	case reservation.KindClosed:
		return http.StatusGone
	case reservation.KindConflict:
		return http.StatusConflict
	case reservation.KindInfrastructure:
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}

// writeError renders err as {"error": code, "message": ...}.  Infrastructure
// and unknown errors are logged and hidden from the client.
func writeError(c echo.Context, err error) error {
	k := reservation.KindOf(err)
	status := statusFor(k)
	body := echo.Map{"error": k.String(), "message": err.Error()}
	var re *reservation.Error
	if errors.As(err, &re) && re.SeatID != "" {
		body["seat_id"] = re.SeatID
	}
	if status >= http.StatusInternalServerError {
		c.Logger().Errorf("%s %s: %v", c.Request().Method, c.Path(), err)
		body["message"] = http.StatusText(status)
		if k == reservation.KindUnknown {
			body["error"] = "internal"
		}
	}
	return c.JSON(status, body)
}

func parseMatchID(c echo.Context) (uint64, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, reservation.Validationf(0, "invalid match id %q", c.Param("id"))
	}
	return id, nil
}
