package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pavel-fokin/nas-files/internal/apperror"
)

func TestHealthz(t *testing.T) {
	req, err := http.NewRequest("GET", "/healthz", nil)
	assert.NoError(t, err)

	rr := httptest.NewRecorder()
	handler := http.HandlerFunc(healthz)
	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestQueryID(t *testing.T) {
	tests := []struct {
		name   string
		query  string
		wantID int64
		wantOK bool
	}{
		{name: "present", query: "id=7", wantID: 7, wantOK: true},
		{name: "missing", query: "", wantOK: false},
		{name: "empty", query: "id=", wantOK: false},
		{name: "not a number", query: "id=abc", wantOK: false},
		{name: "negative", query: "id=-1", wantID: -1, wantOK: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", (&url.URL{Path: "/", RawQuery: tt.query}).String(), nil)

			id, ok := queryID(req)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantID, id)
		})
	}
}

func TestWriteResponse(t *testing.T) {
	t.Run("json envelope", func(t *testing.T) {
		rr := httptest.NewRecorder()
		writeResponse(rr, http.StatusCreated, "created", map[string]int{"id": 1})

		assert.Equal(t, http.StatusCreated, rr.Code)
		assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))

		var resp struct {
			Status  string          `json:"status"`
			Message string          `json:"message"`
			Data    json.RawMessage `json:"data"`
		}
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
		assert.Equal(t, "201 Created", resp.Status)
		assert.Equal(t, "created", resp.Message)
		assert.JSONEq(t, `{"id":1}`, string(resp.Data))
	})

	t.Run("no content has no body", func(t *testing.T) {
		rr := httptest.NewRecorder()
		writeResponse(rr, http.StatusNoContent, "", nil)

		assert.Equal(t, http.StatusNoContent, rr.Code)
		assert.Empty(t, rr.Body.String())
	})
}

func TestWriteError(t *testing.T) {
	tests := []struct {
		name         string
		err          error
		expectedCode int
	}{
		{name: "validation", err: apperror.NewValidation("bad input"), expectedCode: http.StatusBadRequest},
		{name: "not found", err: apperror.NewNotFound("nothing here"), expectedCode: http.StatusNotFound},
		{name: "no content", err: apperror.NewNoContent("no data found"), expectedCode: http.StatusNoContent},
		{name: "storage", err: apperror.NewStorage("db down", assert.AnError), expectedCode: http.StatusInternalServerError},
		{name: "plain error", err: assert.AnError, expectedCode: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			writeError(rr, tt.err)

			assert.Equal(t, tt.expectedCode, rr.Code)
		})
	}
}

func TestLimitBody(t *testing.T) {
	handler := limitBody(10)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct{}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Bad Request", http.StatusBadRequest)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))

	t.Run("body within limit", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/", strings.NewReader("{}"))
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)
		assert.Equal(t, http.StatusOK, rr.Code)
	})

	t.Run("body exceeds limit", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/", strings.NewReader(`{"ignored":"0123456789"}`))
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}
