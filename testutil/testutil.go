// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/danielhkuo/quickly-tally/auth"
	"github.com/danielhkuo/quickly-tally/cliparse"
	"github.com/danielhkuo/quickly-tally/db"
	"github.com/danielhkuo/quickly-tally/registry"
)

// TestDBURL is an in-memory SQLite database private to one connection.
const TestDBURL = ":memory:"

// Standard ballot timing used across tests.
const (
	WaitToStart = 60 * time.Second
	Window      = 300 * time.Second
)

// DinnerOptions are the options of the standard test ballot.
var DinnerOptions = []string{"Fish", "Chicken", "Beef"}

// ManualClock is a registry.Clock that only moves when told to.
type ManualClock struct {
	mu  sync.Mutex
	now time.Time
}

func NewManualClock() *ManualClock {
	return &ManualClock{now: time.Unix(1_700_000_000, 0)}
}

func (c *ManualClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Advance moves the clock forward by d.
func (c *ManualClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// SetupTestDB creates a fresh test database with the full schema
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	conn, err := db.Open(db.TypeSQLite, TestDBURL)
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}

	if err := db.CreateSchema(conn); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	return conn
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:         3318,
		DatabaseType: db.TypeSQLite,
		DatabaseURL:  TestDBURL,
		VoterIDSalt:  "test-voter-salt",
	}
}

// SetupTestRegistry returns an in-memory registry driven by a manual clock.
func SetupTestRegistry(t *testing.T) (*registry.Registry, *ManualClock) {
	t.Helper()

	clock := NewManualClock()
	return registry.New(clock), clock
}

// SetupPersistentRegistry returns a registry backed by a fresh SQLite
// database. The database is closed when the test ends.
func SetupPersistentRegistry(t *testing.T) (*registry.Registry, *ManualClock, *sql.DB) {
	t.Helper()

	conn := SetupTestDB(t)
	t.Cleanup(func() { conn.Close() })

	clock := NewManualClock()
	reg, err := registry.Open(clock, db.NewStore(conn))
	if err != nil {
		t.Fatalf("Failed to open registry: %v", err)
	}
	return reg, clock, conn
}

// CreateTestBallot creates the standard dinner ballot, starting WaitToStart
// after the clock's current time and open for Window.
func CreateTestBallot(t *testing.T, reg *registry.Registry, clock *ManualClock) int {
	t.Helper()

	index, err := reg.CreateBallot("What are you going to eat tonight?", DinnerOptions, clock.Now().Add(WaitToStart), Window)
	if err != nil {
		t.Fatalf("Failed to create test ballot: %v", err)
	}
	return index
}

// CreateTestVoter returns a fresh voter token and the identity it maps to
// under the test configuration.
func CreateTestVoter(t *testing.T) (string, registry.VoterID) {
	t.Helper()

	token := auth.GenerateVoterToken()
	return token, auth.VoterIDFromToken(token, GetTestConfig().VoterIDSalt)
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
