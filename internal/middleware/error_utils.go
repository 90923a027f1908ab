package middleware

import (
	"net/http"

	"github.com/onerilhan/guild-payout-api/internal/middleware/errors"
)

// getErrorMessage status code'a göre kullanıcıya gösterilecek mesajı alır
func getErrorMessage(statusCode int, config *errors.ErrorConfig) string {
	if customMessage, exists := config.CustomErrorMap[statusCode]; exists {
		return customMessage
	}
	return http.StatusText(statusCode)
}

// truncateString string'i belirtilen uzunlukta keser
func truncateString(s string, maxLength int) string {
	if maxLength <= 3 || len(s) <= maxLength {
		return s
	}
	return s[:maxLength-3] + "..."
}

// shouldSkip path listede var mı; "*" ile biten girişler prefix olarak eşleşir
func shouldSkip(path string, skipPaths []string) bool {
	for _, skipPath := range skipPaths {
		if path == skipPath {
			return true
		}
		if n := len(skipPath); n > 0 && skipPath[n-1] == '*' && len(path) >= n-1 && path[:n-1] == skipPath[:n-1] {
			return true
		}
	}
	return false
}
