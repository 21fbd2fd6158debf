package http

import (
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"expensecast/internal/core"
)

// categoryParam extracts the category query parameter, defaulting to the
// combined view when absent.
func categoryParam(r *http.Request) string {
	c := sanitizeInput(r.URL.Query().Get("category"))
	if c == "" {
		return core.CombinedCategory
	}
	return c
}

// periodsParam extracts the forecast horizon. Missing or malformed
// values fall back to def; out-of-range values are clamped to 1..36.
func periodsParam(r *http.Request, def int) int {
	v := strings.TrimSpace(r.URL.Query().Get("periods"))
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	if n < 1 {
		n = 1
	}
	if n > 36 {
		n = 36
	}
	return n
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func errorJSON(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// requireMethod writes a 405 and returns false when the request method
// does not match.
func requireMethod(w http.ResponseWriter, r *http.Request, method string) bool {
	if r.Method != method {
		w.Header().Set("Allow", method)
		errorJSON(w, http.StatusMethodNotAllowed, "method not allowed")
		return false
	}
	return true
}

// sanitizeInput removes control characters and trims whitespace.
func sanitizeInput(s string) string {
	s = strings.TrimSpace(s)
	return strings.Map(func(r rune) rune {
		if r < 32 && r != 9 && r != 10 && r != 13 {
			return -1
		}
		return r
	}, s)
}

// generateRequestID creates a unique request ID for tracing.
func generateRequestID() string {
	bytes := make([]byte, 8)
	if _, err := rand.Read(bytes); err != nil {
		return fmt.Sprintf("req_%d", time.Now().UnixNano())
	}
	return "req_" + hex.EncodeToString(bytes)
}
