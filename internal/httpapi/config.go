package httpapi

import "golang.org/x/time/rate"

// maxBodyBytes controls the maximum allowed request body size for JSON endpoints.
// Default is 1 MiB.
var maxBodyBytes int64 = 1 << 20

// SetMaxBodyBytes allows configuring the maximum request body size.
func SetMaxBodyBytes(n int64) {
	if n <= 0 {
		maxBodyBytes = 1 << 20
		return
	}
	maxBodyBytes = n
}

// mutationLimiter throttles menu and classifier writes. Nil means unlimited.
var mutationLimiter *rate.Limiter

// SetMutationRateLimit limits POST requests to perSec with the given burst.
// perSec <= 0 disables the limit.
func SetMutationRateLimit(perSec float64, burst int) {
	if perSec <= 0 {
		mutationLimiter = nil
		return
	}
	if burst < 1 {
		burst = 1
	}
	mutationLimiter = rate.NewLimiter(rate.Limit(perSec), burst)
}

// CORS configuration (opt-in). If disabled, no CORS middleware is added.
var (
	corsEnabled        bool
	corsAllowedOrigins []string
	corsAllowedMethods []string
	corsAllowedHeaders []string
)

// SetCORSOptions configures CORS behavior for the HTTP server.
func SetCORSOptions(enabled bool, origins, methods, headers []string) {
	corsEnabled = enabled
	corsAllowedOrigins = append([]string(nil), origins...)
	corsAllowedMethods = append([]string(nil), methods...)
	corsAllowedHeaders = append([]string(nil), headers...)
}
