// Package auth implements the request authorization gate every reporting
// endpoint passes through before any query runs: API key, hospital-code
// binding, and source IP allow-listing.
package auth

import (
	"errors"
	"net"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

const (
	HeaderAPIKey       = "x-api-key"
	HeaderHospCode     = "x-hospcode"
	HeaderForwardedFor = "X-Forwarded-For"
)

// Sentinel errors, one per check. The first failing check wins; later checks
// are never evaluated, so a caller cannot probe which one would fail next.
var (
	ErrMissingCredential     = errors.New("missing x-api-key header")
	ErrInvalidCredential     = errors.New("invalid api key")
	ErrIdentityMismatch      = errors.New("hospcode header does not match request body")
	ErrHospitalNotAuthorized = errors.New("hospcode not served by this installation")
	ErrSourceNotAllowed      = errors.New("source address not allowed")
)

// Gate decides ALLOW or DENY for one request. It is built once from the
// immutable configuration and is safe for concurrent use.
type Gate struct {
	apiKey     string
	hospCode   string
	allowedIPs map[string]bool
}

// NewGate creates a gate for this installation. allowedIPs must already
// exclude absent entries; an empty set denies every source.
func NewGate(apiKey, hospCode string, allowedIPs map[string]bool) *Gate {
	return &Gate{apiKey: apiKey, hospCode: hospCode, allowedIPs: allowedIPs}
}

// Authorize runs the checks in strict order against the request headers, the
// resolved client address, and the hospital code declared in the body. It
// has no side effects and performs no I/O.
func (g *Gate) Authorize(c echo.Context, bodyHospCode string) error {
	apiKey := c.Request().Header.Get(HeaderAPIKey)
	hospHeader := c.Request().Header.Get(HeaderHospCode)

	if apiKey == "" {
		return ErrMissingCredential
	}
	if apiKey != g.apiKey {
		return ErrInvalidCredential
	}
	if hospHeader != bodyHospCode {
		return ErrIdentityMismatch
	}
	if bodyHospCode != g.hospCode {
		return ErrHospitalNotAuthorized
	}
	if !g.allowedIPs[ClientIP(c)] {
		return ErrSourceNotAllowed
	}
	return nil
}

// ClientIP resolves the caller's network address once per request: the first
// entry of X-Forwarded-For when the request came through the front proxy,
// otherwise the transport peer address.
func ClientIP(c echo.Context) string {
	if xff := c.Request().Header.Get(HeaderForwardedFor); xff != "" {
		return strings.TrimSpace(strings.SplitN(xff, ",", 2)[0])
	}
	host, _, err := net.SplitHostPort(c.Request().RemoteAddr)
	if err != nil {
		return c.Request().RemoteAddr
	}
	return host
}

// HTTPError maps a gate denial to the transport status the consumers expect:
// 401 for a missing key, 403 for a bad key or disallowed source, 400 for
// hospital-code problems.
func HTTPError(err error) *echo.HTTPError {
	switch {
	case errors.Is(err, ErrMissingCredential):
		return echo.NewHTTPError(http.StatusUnauthorized, err.Error())
	case errors.Is(err, ErrInvalidCredential), errors.Is(err, ErrSourceNotAllowed):
		return echo.NewHTTPError(http.StatusForbidden, err.Error())
	case errors.Is(err, ErrIdentityMismatch), errors.Is(err, ErrHospitalNotAuthorized):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, "authorization error")
	}
}
