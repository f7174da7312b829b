package middleware

import (
	"net/http"
	"time"
)

// HTTPObserver records served requests. *metrics.Metrics implements it.
type HTTPObserver interface {
	ObserveHTTP(method, route string, status int, d time.Duration)
}

// Route labels for requests answered before reaching a mux route.
const (
	RouteUnmatched   = "unmatched"
	RouteRateLimited = "rate_limited"
	RoutePreflight   = "preflight"
)

// Metrics reports each request to obs, labelled by the ServeMux pattern that
// matched. The mux records the pattern on the request it receives, so handlers
// between Metrics and the mux must pass r through rather than a copy.
// Requests rejected by the rate limiter or answered as CORS preflights carry
// their own route label.
func Metrics(obs HTTPObserver, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		wrapped := wrap(w)
		next.ServeHTTP(wrapped, r)

		route := r.Pattern
		switch {
		case route != "":
		case wrapped.status == http.StatusTooManyRequests:
			route = RouteRateLimited
		case isPreflight(r):
			route = RoutePreflight
		default:
			route = RouteUnmatched
		}
		obs.ObserveHTTP(r.Method, route, wrapped.status, time.Since(start))
	})
}
