package middleware

import (
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/platformops/connect-dashboard/internal/audit"
	apperrors "github.com/platformops/connect-dashboard/internal/errors"
	"github.com/platformops/connect-dashboard/internal/util"
)

const basicAuthRealm = `Basic realm="Connect Dashboard", charset="UTF-8"`

// BasicAuthMiddleware gates the whole dashboard behind one bcrypt-hashed
// operator password. Any username is accepted. With an empty hash the gate is
// open.
type BasicAuthMiddleware struct {
	passwordHash string
	limiter      *LoginRateLimiter
}

func NewBasicAuthMiddleware(passwordHash string) *BasicAuthMiddleware {
	return &BasicAuthMiddleware{
		passwordHash: passwordHash,
		limiter:      NewLoginRateLimiter(),
	}
}

func (m *BasicAuthMiddleware) Enabled() bool {
	return m.passwordHash != ""
}

func (m *BasicAuthMiddleware) Handler(next http.Handler) http.Handler {
	if !m.Enabled() {
		return next
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip := audit.ClientIP(r)

		if m.limiter.Blocked(ip) {
			w.Header().Set("Retry-After", "60")
			writeJSON(w, http.StatusTooManyRequests, map[string]string{
				"error": "Too many login attempts. Please try again later.",
			})
			return
		}

		_, password, ok := r.BasicAuth()
		if !ok || !util.CheckPasswordHash(password, m.passwordHash) {
			if ok {
				m.limiter.RecordFailure(ip)
				log.Warn().Str("ip", ip).Msg("basic auth: invalid password")
				audit.LogFromRequest(r, audit.Event{
					Type:    audit.EventAuthFailure,
					Details: map[string]interface{}{"path": r.URL.Path},
				})
			}
			w.Header().Set("WWW-Authenticate", basicAuthRealm)
			writeError(w, apperrors.Unauthorized("Authentication required"))
			return
		}

		m.limiter.Reset(ip)
		next.ServeHTTP(w, r)
	})
}
