package firewall

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/charmbracelet/log"
)

// Protect wraps a handler with the request firewall. Policy failures
// short-circuit with a 403 before the handler runs; a fault inside the
// validator itself is converted to a generic 400 so internal detail never
// reaches the client.
func Protect(validator *RequestValidator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			verdict, err := runValidation(validator, r)
			if err != nil {
				log.Error("Request validation failed", "error", err, "method", r.Method, "path", r.URL.Path)
				writeRejection(w, http.StatusBadRequest, ReasonValidatorFailure)
				return
			}

			if !verdict.Allowed {
				writeRejection(w, http.StatusForbidden, verdict.Reason)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func runValidation(validator *RequestValidator, r *http.Request) (verdict Verdict, err error) {
	defer func() {
		if recovered := recover(); recovered != nil {
			err = fmt.Errorf("validator panic: %v", recovered)
		}
	}()

	return validator.Validate(r), nil
}

func writeRejection(w http.ResponseWriter, status int, reason string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"success": false,
		"error":   reason,
	})
}
