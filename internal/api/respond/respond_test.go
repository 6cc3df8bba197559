package respond

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hourei/hourei-backend/internal/lawapi"
	"github.com/hourei/hourei-backend/internal/model"
)

func TestWriteError(t *testing.T) {
	w := httptest.NewRecorder()
	WriteError(w, http.StatusBadRequest, "keyword is required")

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	var body ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, http.StatusBadRequest, body.Code)
	assert.Equal(t, "keyword is required", body.Message)
}

func TestWriteDomainError(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"not found sentinel", fmt.Errorf("law: %w", model.ErrNotFound), http.StatusNotFound},
		{"validation sentinel", fmt.Errorf("input: %w", model.ErrValidation), http.StatusBadRequest},
		{"upstream 404", &lawapi.APIError{Category: lawapi.Irrecoverable, Status: 404, Message: "not found"}, http.StatusNotFound},
		{"retry exhaustion", &lawapi.APIError{Category: lawapi.Recoverable, Status: 503, Message: "unavailable"}, http.StatusBadGateway},
		{"client validation", &lawapi.APIError{Category: lawapi.Irrecoverable, Message: "empty keyword"}, http.StatusBadRequest},
		{"unexpected", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			WriteDomainError(w, tc.err)
			assert.Equal(t, tc.want, w.Code)
		})
	}
}
