package middleware

import (
	"crypto/subtle"
	"net/http"

	"clinic-admin-api/pkg/response"
)

const DeviceKeyHeader = "X-Device-Key"

// RequireDeviceKey guards the endpoints the fingerprint scanner calls.
func RequireDeviceKey(apiKey string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := r.Header.Get(DeviceKeyHeader)
			if apiKey == "" || subtle.ConstantTimeCompare([]byte(key), []byte(apiKey)) != 1 {
				response.Unauthorized(w, "Access denied")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
