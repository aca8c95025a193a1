package errs

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConstructors(t *testing.T) {
	code := "PLANET_NOT_FOUND"

	testCases := []struct {
		name           string
		err            *HTTPError
		expectedStatus int
		expectedCode   string
	}{
		{name: "bad request", err: NewBadRequestError("bad", false, nil, nil, nil), expectedStatus: http.StatusBadRequest, expectedCode: "BAD_REQUEST"},
		{name: "not found default code", err: NewNotFoundError("missing", false, nil), expectedStatus: http.StatusNotFound, expectedCode: "NOT_FOUND"},
		{name: "not found custom code", err: NewNotFoundError("Planet does not exist", true, &code), expectedStatus: http.StatusNotFound, expectedCode: code},
		{name: "too many requests", err: NewTooManyRequestsError("slow down"), expectedStatus: http.StatusTooManyRequests, expectedCode: "TOO_MANY_REQUESTS"},
		{name: "service unavailable", err: NewServiceUnavailableError("down"), expectedStatus: http.StatusServiceUnavailable, expectedCode: "SERVICE_UNAVAILABLE"},
		{name: "internal", err: NewInternalServerError(), expectedStatus: http.StatusInternalServerError, expectedCode: "INTERNAL_SERVER_ERROR"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expectedStatus, tc.err.Status)
			assert.Equal(t, tc.expectedCode, tc.err.Code)
		})
	}
}

func TestHTTPErrorMatchesThroughWrapping(t *testing.T) {
	wrapped := fmt.Errorf("service: %w", NewNotFoundError("User does not exist", true, nil))

	var httpErr *HTTPError
	assert.True(t, errors.As(wrapped, &httpErr))
	assert.Equal(t, "User does not exist", httpErr.Error())
	assert.True(t, errors.Is(wrapped, &HTTPError{}))
}

func TestWithMessageCopies(t *testing.T) {
	original := NewBadRequestError("original", true, nil, []FieldError{{Field: "id", Error: "is required"}}, nil)
	copied := original.WithMessage("changed")

	assert.Equal(t, "original", original.Message)
	assert.Equal(t, "changed", copied.Message)
	assert.Equal(t, original.Errors, copied.Errors)
	assert.Equal(t, original.Status, copied.Status)
}
