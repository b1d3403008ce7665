package errors

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sort"
)

// Regular field scan order for DRF-style validation payloads. Fields named
// here win over the alphabetical fallback so the most relevant message
// surfaces first (mirrors the precedence the web client applied).
var priorityFields = []string{
	"non_field_errors",
	"email",
	"password",
	"password1",
	"password2",
	"first_name",
	"last_name",
	"role",
}

// apiErrorBody covers the error shapes the remote service produces: a single
// "detail" string, a "message" string, or a map of field name to message list.
type apiErrorBody map[string]any

// MapAPIError maps a remote service response to an AppError instance.
// It handles the common response patterns:
//   - Transport error (no response) → Network
//   - Context timeouts/cancellations → Network
//   - 401/400 with credential detail → InvalidCredentials
//   - 4xx with field errors → Validation (Field set when identifiable)
//   - 404 → NotFound
//   - 5xx or unparseable body → Server
//
// The message is taken from the first of: server-provided "detail",
// server-provided "message", the first field-specific validation error, else
// the supplied fallback text.
func MapAPIError(err error, resp *http.Response, body []byte, fallback string) error {
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
			return Wrap(err, ErrCodeNetwork, "The request timed out. Please try again.")
		}
		var appErr *AppError
		if errors.As(err, &appErr) {
			return appErr
		}
		return Wrap(err, ErrCodeNetwork, "Unable to reach the server. Check your connection and try again.")
	}
	if resp == nil {
		return Network("Unable to reach the server. Check your connection and try again.")
	}

	message, field := extractMessage(body)
	if message == "" {
		message = fallback
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized, resp.StatusCode == http.StatusForbidden:
		return &AppError{Code: ErrCodeInvalidCredentials, Message: message}
	case resp.StatusCode == http.StatusNotFound:
		return &AppError{Code: ErrCodeNotFound, Message: message}
	case resp.StatusCode >= 400 && resp.StatusCode < 500:
		return &AppError{Code: ErrCodeValidation, Message: message, Field: field}
	default:
		return &AppError{Code: ErrCodeServer, Message: message}
	}
}

// extractMessage pulls the best display message out of an error body along
// with the offending field name, when one can be identified.
func extractMessage(body []byte) (message, field string) {
	if len(body) == 0 {
		return "", ""
	}

	var parsed apiErrorBody
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", ""
	}

	if s, ok := parsed["detail"].(string); ok && s != "" {
		return s, ""
	}
	if s, ok := parsed["message"].(string); ok && s != "" {
		return s, ""
	}

	for _, name := range priorityFields {
		if msg := firstFieldMessage(parsed[name]); msg != "" {
			return msg, name
		}
	}

	// Unknown field errors: scan alphabetically for determinism.
	names := make([]string, 0, len(parsed))
	for name := range parsed {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if msg := firstFieldMessage(parsed[name]); msg != "" {
			return msg, name
		}
	}

	return "", ""
}

// firstFieldMessage extracts the first message from a DRF field error value,
// which is usually a list of strings but occasionally a bare string.
func firstFieldMessage(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case []any:
		for _, item := range val {
			if s, ok := item.(string); ok && s != "" {
				return s
			}
		}
	}
	return ""
}
