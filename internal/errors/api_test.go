package errors

import (
	"context"
	stderrors "errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func respWithStatus(code int) *http.Response {
	return &http.Response{StatusCode: code}
}

func TestMapAPIError_TransportError(t *testing.T) {
	err := MapAPIError(stderrors.New("dial tcp: connection refused"), nil, nil, "Login failed")

	var appErr *AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, ErrCodeNetwork, appErr.Code)
	assert.Contains(t, appErr.Message, "Unable to reach the server")
}

func TestMapAPIError_ContextDeadline(t *testing.T) {
	err := MapAPIError(context.DeadlineExceeded, nil, nil, "Login failed")

	var appErr *AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, ErrCodeNetwork, appErr.Code)
	assert.Contains(t, appErr.Message, "timed out")
}

func TestMapAPIError_PreservesAppError(t *testing.T) {
	original := RefreshInvalid("session expired")
	err := MapAPIError(original, nil, nil, "fallback")
	assert.True(t, IsRefreshInvalid(err))
}

func TestMapAPIError_DetailWins(t *testing.T) {
	body := []byte(`{"detail":"Invalid email or password.","message":"ignored"}`)
	err := MapAPIError(nil, respWithStatus(http.StatusUnauthorized), body, "Login failed")

	var appErr *AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, ErrCodeInvalidCredentials, appErr.Code)
	assert.Equal(t, "Invalid email or password.", appErr.Message)
}

func TestMapAPIError_MessageFallback(t *testing.T) {
	body := []byte(`{"message":"Account locked."}`)
	err := MapAPIError(nil, respWithStatus(http.StatusUnauthorized), body, "Login failed")
	assert.Equal(t, "Account locked.", DisplayMessage(err, "x"))
}

func TestMapAPIError_FieldErrors(t *testing.T) {
	body := []byte(`{"email":["A user with this email already exists."],"password1":["Too short."]}`)
	err := MapAPIError(nil, respWithStatus(http.StatusBadRequest), body, "Registration failed")

	var appErr *AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, ErrCodeValidation, appErr.Code)
	assert.Equal(t, "A user with this email already exists.", appErr.Message)
	assert.Equal(t, "email", appErr.Field)
}

func TestMapAPIError_NonFieldErrorsFirst(t *testing.T) {
	body := []byte(`{"email":["bad email"],"non_field_errors":["Unable to log in with provided credentials."]}`)
	err := MapAPIError(nil, respWithStatus(http.StatusBadRequest), body, "Login failed")

	var appErr *AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "Unable to log in with provided credentials.", appErr.Message)
}

func TestMapAPIError_UnknownFieldScansAlphabetically(t *testing.T) {
	body := []byte(`{"zeta":["last"],"alpha":["first"]}`)
	err := MapAPIError(nil, respWithStatus(http.StatusBadRequest), body, "failed")

	var appErr *AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "first", appErr.Message)
	assert.Equal(t, "alpha", appErr.Field)
}

func TestMapAPIError_UnparseableBodyUsesFallback(t *testing.T) {
	body := []byte(`<html>502 Bad Gateway</html>`)
	err := MapAPIError(nil, respWithStatus(http.StatusBadGateway), body, "Something went wrong")

	var appErr *AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, ErrCodeServer, appErr.Code)
	assert.Equal(t, "Something went wrong", appErr.Message)
}

func TestMapAPIError_NotFound(t *testing.T) {
	err := MapAPIError(nil, respWithStatus(http.StatusNotFound), []byte(`{"detail":"Not found."}`), "failed")
	assert.True(t, IsNotFound(err))
}

func TestMapAPIError_ServerError(t *testing.T) {
	err := MapAPIError(nil, respWithStatus(http.StatusInternalServerError), nil, "failed")
	assert.True(t, IsServer(err))
}
