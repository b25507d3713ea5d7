package middleware

// identity.go turns JWT claims into the claimant identity used as the owner
// value of seat locks.  Seat ownership is compared as a string, so numeric
// subjects must always render the same way ("5", never "5.0").

import (
	"strconv"

	"github.com/labstack/echo/v4"
)

// claimString renders a sub claim as a string.  JSON numbers decode as
// float64; whole numbers are printed without a fraction.
func claimString(v interface{}) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		if t == float64(int64(t)) {
			return strconv.FormatInt(int64(t), 10)
		}
		return strconv.FormatFloat(t, 'f', -1, 64)
	case int64:
		return strconv.FormatInt(t, 10)
	case int:
		return strconv.Itoa(t)
	}
	return ""
}

// UserID returns the claimant identity stored by JWTAuth, or "" when the
// request is unauthenticated.
func UserID(c echo.Context) string {
	if s, ok := c.Get(ContextUserID).(string); ok {
		return s
	}
	return ""
}
