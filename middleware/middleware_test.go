// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package middleware

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/danielhkuo/quickly-tally/models"
)

// captureLogs routes the default slog logger into a buffer for one test.
func captureLogs(t *testing.T) *bytes.Buffer {
	t.Helper()

	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewJSONHandler(&buf, nil)))
	t.Cleanup(func() { slog.SetDefault(prev) })
	return &buf
}

func TestWithLogging_RecordsStatus(t *testing.T) {
	logs := captureLogs(t)

	handler := WithLogging(func(w http.ResponseWriter, r *http.Request) {
		ErrorResponse(w, http.StatusConflict, "already voted in this ballot")
	})

	req := httptest.NewRequest("POST", "/ballots/0/votes", nil)
	req.Header.Set(RequestIDHeader, "req-42")
	w := httptest.NewRecorder()

	handler(w, req)

	if w.Code != http.StatusConflict {
		t.Errorf("Expected status 409, got %d", w.Code)
	}

	var completed map[string]any
	for _, line := range strings.Split(strings.TrimSpace(logs.String()), "\n") {
		var entry map[string]any
		if err := json.Unmarshal([]byte(line), &entry); err != nil {
			t.Fatalf("Bad log line %q: %v", line, err)
		}
		if entry["msg"] == "request completed" {
			completed = entry
		}
	}
	if completed == nil {
		t.Fatalf("No completion log line in:\n%s", logs.String())
	}
	if completed["request_id"] != "req-42" {
		t.Errorf("Expected request_id req-42, got %v", completed["request_id"])
	}
	if completed["status"] != float64(http.StatusConflict) {
		t.Errorf("Expected logged status 409, got %v", completed["status"])
	}
	if completed["path"] != "/ballots/0/votes" {
		t.Errorf("Expected logged path, got %v", completed["path"])
	}
}

func TestWithLogging_DefaultsToOK(t *testing.T) {
	logs := captureLogs(t)

	handler := WithLogging(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})
	w := httptest.NewRecorder()

	handler(w, httptest.NewRequest("GET", "/health", nil))

	if w.Body.String() != "OK" {
		t.Errorf("Expected body 'OK', got '%s'", w.Body.String())
	}
	if !strings.Contains(logs.String(), `"status":200`) {
		t.Errorf("Expected status 200 logged when handler never calls WriteHeader:\n%s", logs.String())
	}
}

func TestWithLogging_RequestID(t *testing.T) {
	captureLogs(t)

	handler := WithLogging(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	t.Run("generated when absent", func(t *testing.T) {
		w := httptest.NewRecorder()
		handler(w, httptest.NewRequest("GET", "/ballots", nil))

		id := w.Header().Get(RequestIDHeader)
		if id == "" {
			t.Fatal("Expected a generated X-Request-ID")
		}

		w2 := httptest.NewRecorder()
		handler(w2, httptest.NewRequest("GET", "/ballots", nil))
		if w2.Header().Get(RequestIDHeader) == id {
			t.Error("Expected distinct request IDs per request")
		}
	})

	t.Run("echoed when present", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/ballots", nil)
		req.Header.Set(RequestIDHeader, "client-chosen-id")
		w := httptest.NewRecorder()

		handler(w, req)

		if got := w.Header().Get(RequestIDHeader); got != "client-chosen-id" {
			t.Errorf("Expected echoed request ID, got '%s'", got)
		}
	})
}

func TestJSONResponse(t *testing.T) {
	testCases := []struct {
		name       string
		statusCode int
		data       interface{}
		expected   string
	}{
		{
			name:       "created ballot",
			statusCode: http.StatusCreated,
			data:       models.CreateBallotResponse{BallotIndex: 3},
			expected:   `{"ballot_index":3}`,
		},
		{
			name:       "winners",
			statusCode: http.StatusOK,
			data:       models.WinnersResponse{BallotIndex: 0, Status: "closed", Winners: []bool{false, true, false}},
			expected:   `{"ballot_index":0,"status":"closed","winners":[false,true,false]}`,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()

			JSONResponse(w, tc.statusCode, tc.data)

			if w.Code != tc.statusCode {
				t.Errorf("Expected status %d, got %d", tc.statusCode, w.Code)
			}
			if ct := w.Header().Get("Content-Type"); ct != "application/json" {
				t.Errorf("Expected Content-Type 'application/json', got '%s'", ct)
			}
			if body := strings.TrimSpace(w.Body.String()); body != tc.expected {
				t.Errorf("Expected body '%s', got '%s'", tc.expected, body)
			}
		})
	}
}

func TestErrorResponse(t *testing.T) {
	testCases := []struct {
		statusCode    int
		message       string
		expectedError string
	}{
		{http.StatusBadRequest, "invalid ballot: at least 2 options required", "Bad Request"},
		{http.StatusNotFound, "ballot 4: not found", "Not Found"},
		{http.StatusConflict, "ballot has ended", "Conflict"},
	}

	for _, tc := range testCases {
		t.Run(tc.expectedError, func(t *testing.T) {
			w := httptest.NewRecorder()

			ErrorResponse(w, tc.statusCode, tc.message)

			if w.Code != tc.statusCode {
				t.Errorf("Expected status %d, got %d", tc.statusCode, w.Code)
			}

			var resp models.ErrorResponse
			if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
				t.Fatalf("Failed to decode error response: %v", err)
			}
			if resp.Error != tc.expectedError || resp.Message != tc.message {
				t.Errorf("Expected {%s %s}, got {%s %s}", tc.expectedError, tc.message, resp.Error, resp.Message)
			}
		})
	}
}

func TestParseJSONBody(t *testing.T) {
	t.Run("option zero is distinct from missing", func(t *testing.T) {
		var withZero models.CastVoteRequest
		if err := ParseJSONBody(httptest.NewRequest("POST", "/", strings.NewReader(`{"option_index":0}`)), &withZero); err != nil {
			t.Fatalf("Expected no error, got: %v", err)
		}
		if withZero.OptionIndex == nil || *withZero.OptionIndex != 0 {
			t.Errorf("Expected option_index 0, got %v", withZero.OptionIndex)
		}

		var missing models.CastVoteRequest
		if err := ParseJSONBody(httptest.NewRequest("POST", "/", strings.NewReader(`{}`)), &missing); err != nil {
			t.Fatalf("Expected no error, got: %v", err)
		}
		if missing.OptionIndex != nil {
			t.Errorf("Expected nil option_index, got %d", *missing.OptionIndex)
		}
	})

	t.Run("ballot request", func(t *testing.T) {
		body := `{"title":"Dinner","options":["Fish","Beef"],"start_time":1700000060,"duration":300}`

		var parsed models.CreateBallotRequest
		if err := ParseJSONBody(httptest.NewRequest("POST", "/", strings.NewReader(body)), &parsed); err != nil {
			t.Fatalf("Expected no error, got: %v", err)
		}
		if parsed.StartTime != 1700000060 || parsed.Duration != 300 || len(parsed.Options) != 2 {
			t.Errorf("Unexpected parse result: %+v", parsed)
		}
	})

	for _, body := range []string{"", "{invalid json}"} {
		t.Run("rejects "+body, func(t *testing.T) {
			var parsed models.CreateBallotRequest
			if err := ParseJSONBody(httptest.NewRequest("POST", "/", strings.NewReader(body)), &parsed); err == nil {
				t.Error("Expected error")
			}
		})
	}
}

func TestCORS(t *testing.T) {
	nextHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("handled"))
	})
	corsHandler := CORS(nextHandler)

	t.Run("preflight allows voter token", func(t *testing.T) {
		req := httptest.NewRequest("OPTIONS", "/ballots/0/votes", nil)
		req.Header.Set("Origin", "http://localhost:5173")
		w := httptest.NewRecorder()

		corsHandler.ServeHTTP(w, req)

		if w.Code != http.StatusOK || w.Body.String() != "" {
			t.Errorf("Expected empty 200 preflight, got %d '%s'", w.Code, w.Body.String())
		}
		if w.Header().Get("Access-Control-Allow-Origin") != "http://localhost:5173" {
			t.Error("Expected Access-Control-Allow-Origin to match request origin")
		}
		allowed := w.Header().Get("Access-Control-Allow-Headers")
		for _, h := range []string{"Content-Type", "X-Voter-Token", RequestIDHeader} {
			if !strings.Contains(allowed, h) {
				t.Errorf("Expected %s in allowed headers, got '%s'", h, allowed)
			}
		}
	})

	t.Run("request ID is exposed", func(t *testing.T) {
		w := httptest.NewRecorder()
		corsHandler.ServeHTTP(w, httptest.NewRequest("GET", "/ballots", nil))

		if w.Body.String() != "handled" {
			t.Error("Expected next handler to be called")
		}
		if w.Header().Get("Access-Control-Allow-Origin") != "*" {
			t.Error("Expected Access-Control-Allow-Origin to default to '*'")
		}
		if w.Header().Get("Access-Control-Expose-Headers") != RequestIDHeader {
			t.Errorf("Expected %s exposed", RequestIDHeader)
		}
	})
}

func TestGetClientIP(t *testing.T) {
	testCases := []struct {
		name       string
		headers    map[string]string
		remoteAddr string
		expectedIP string
	}{
		{"first forwarded address", map[string]string{"X-Forwarded-For": "203.0.113.195, 70.41.3.18"}, "127.0.0.1:12345", "203.0.113.195"},
		{"real IP header", map[string]string{"X-Real-IP": "203.0.113.50"}, "10.0.0.1:12345", "203.0.113.50"},
		{"remote address without port", nil, "192.168.1.50:54321", "192.168.1.50"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/", nil)
			req.RemoteAddr = tc.remoteAddr
			for k, v := range tc.headers {
				req.Header.Set(k, v)
			}

			if got := GetClientIP(req); got != tc.expectedIP {
				t.Errorf("Expected IP '%s', got '%s'", tc.expectedIP, got)
			}
		})
	}
}
