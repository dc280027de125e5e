package middleware

import (
	"net/http"
	"strings"
)

// Origins the embedded component SDK loads from and talks to.
const (
	connectJSOrigin = "https://connect-js.stripe.com"
	stripeJSOrigin  = "https://js.stripe.com"
	stripeWildcard  = "https://*.stripe.com"
)

type SecurityHeadersMiddleware struct {
	isProduction bool
	csp          string
}

func NewSecurityHeadersMiddleware(isProduction bool) *SecurityHeadersMiddleware {
	return &SecurityHeadersMiddleware{
		isProduction: isProduction,
		csp:          contentSecurityPolicy(),
	}
}

func contentSecurityPolicy() string {
	directives := []string{
		"default-src 'self'",
		"script-src 'self' " + connectJSOrigin + " " + stripeJSOrigin,
		"style-src 'self' 'unsafe-inline'",
		"img-src 'self' data: https:",
		"font-src 'self' " + stripeWildcard,
		"connect-src 'self' " + stripeWildcard,
		"frame-src " + connectJSOrigin + " " + stripeJSOrigin + " " + stripeWildcard,
		"frame-ancestors 'none'",
		"base-uri 'self'",
		"form-action 'self'",
	}
	return strings.Join(directives, "; ")
}

func (m *SecurityHeadersMiddleware) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")

		if m.isProduction {
			w.Header().Set("Strict-Transport-Security", "max-age=31536000; includeSubDomains")
		}

		w.Header().Set("Content-Security-Policy", m.csp)

		next.ServeHTTP(w, r)
	})
}
