// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"
	"time"

	"github.com/danielhkuo/quickly-tally/auth"
	"github.com/danielhkuo/quickly-tally/db"
	"github.com/danielhkuo/quickly-tally/models"
	"github.com/danielhkuo/quickly-tally/registry"
	"github.com/danielhkuo/quickly-tally/testutil"
)

// TestFullVotingWorkflow tests the complete end-to-end workflow:
// 1. Create ballot
// 2. Voters register
// 3. Early vote is rejected
// 4. Voters vote once the ballot starts
// 5. Duplicate vote is rejected
// 6. Late vote is rejected
// 7. Results and winners are read
// 8. Registry is reopened from the database and agrees
func TestFullVotingWorkflow(t *testing.T) {
	reg, clock, conn := testutil.SetupPersistentRegistry(t)
	cfg := testutil.GetTestConfig()

	ballotHandler := NewBallotHandler(reg)
	voterHandler := NewVoterHandler(cfg)
	votingHandler := NewVotingHandler(reg, cfg)
	resultsHandler := NewResultsHandler(reg)

	// Step 1: Create a ballot
	createReq := models.CreateBallotRequest{
		Title:     "What are you going to eat tonight?",
		Options:   testutil.DinnerOptions,
		StartTime: clock.Now().Add(testutil.WaitToStart).Unix(),
		Duration:  int64(testutil.Window / time.Second),
	}
	w := httptest.NewRecorder()
	ballotHandler.CreateBallot(w, testutil.MakeRequest("POST", "/ballots", createReq, nil))
	if w.Code != http.StatusCreated {
		t.Fatalf("Step 1 - Create ballot failed: %d - %s", w.Code, w.Body.String())
	}

	var createResp models.CreateBallotResponse
	testutil.AssertJSON(t, w, &createResp)
	index := createResp.BallotIndex
	t.Logf("Step 1 - Created ballot: %d", index)

	// Step 2: Voters register
	tokens := make([]string, 4)
	for i := range tokens {
		w := httptest.NewRecorder()
		voterHandler.Register(w, httptest.NewRequest("POST", "/voters", nil))
		if w.Code != http.StatusCreated {
			t.Fatalf("Step 2 - Register voter failed: %d - %s", w.Code, w.Body.String())
		}
		var resp models.RegisterVoterResponse
		testutil.AssertJSON(t, w, &resp)
		tokens[i] = resp.VoterToken
	}

	// Step 3: Early vote is rejected
	w = httptest.NewRecorder()
	votingHandler.CastVote(w, castVoteRequest(index, tokens[0], intPtr(0)))
	if w.Code != http.StatusConflict {
		t.Fatalf("Step 3 - Expected early vote to conflict, got %d", w.Code)
	}

	// Step 4: Votes once the ballot starts
	clock.Advance(testutil.WaitToStart + time.Second)
	for i, option := range []int{0, 1, 1} {
		w := httptest.NewRecorder()
		votingHandler.CastVote(w, castVoteRequest(index, tokens[i], intPtr(option)))
		if w.Code != http.StatusCreated {
			t.Fatalf("Step 4 - Vote %d failed: %d - %s", i, w.Code, w.Body.String())
		}
	}

	// Step 5: Duplicate vote is rejected
	w = httptest.NewRecorder()
	votingHandler.CastVote(w, castVoteRequest(index, tokens[0], intPtr(2)))
	if w.Code != http.StatusConflict {
		t.Fatalf("Step 5 - Expected duplicate vote to conflict, got %d", w.Code)
	}

	// Step 6: Late vote is rejected
	clock.Advance(testutil.Window)
	w = httptest.NewRecorder()
	votingHandler.CastVote(w, castVoteRequest(index, tokens[3], intPtr(2)))
	if w.Code != http.StatusConflict {
		t.Fatalf("Step 6 - Expected late vote to conflict, got %d", w.Code)
	}

	// Step 7: Results and winners
	w = httptest.NewRecorder()
	resultsHandler.GetResult(w, resultsRequest("/ballots/0/result", map[string]string{"index": "0"}))
	var result models.ResultResponse
	testutil.AssertJSON(t, w, &result)
	if !reflect.DeepEqual(result.Tallies, []int{1, 2, 0}) {
		t.Errorf("Step 7 - Expected tallies [1 2 0], got %v", result.Tallies)
	}
	if result.Status != "closed" {
		t.Errorf("Step 7 - Expected status closed, got %s", result.Status)
	}

	w = httptest.NewRecorder()
	resultsHandler.GetWinners(w, resultsRequest("/ballots/0/winners", map[string]string{"index": "0"}))
	var winners models.WinnersResponse
	testutil.AssertJSON(t, w, &winners)
	if !reflect.DeepEqual(winners.Winners, []bool{false, true, false}) {
		t.Errorf("Step 7 - Expected winners [false true false], got %v", winners.Winners)
	}

	// Step 8: Reopen from the database
	reopened, err := registry.Open(clock, db.NewStore(conn))
	if err != nil {
		t.Fatalf("Step 8 - Reopen failed: %v", err)
	}
	tallies, _ := reopened.GetResult(index)
	if !reflect.DeepEqual(tallies, []int{1, 2, 0}) {
		t.Errorf("Step 8 - Expected reopened tallies [1 2 0], got %v", tallies)
	}
	voted, _ := reopened.HasVoted(auth.VoterIDFromToken(tokens[1], cfg.VoterIDSalt), index)
	if !voted {
		t.Error("Step 8 - Expected reopened registry to remember voter 1")
	}
}
