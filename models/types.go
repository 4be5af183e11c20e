package models

// Request types

// StartTime is unix seconds; Duration is whole seconds.
type CreateBallotRequest struct {
	Title     string   `json:"title"`
	Options   []string `json:"options"`
	StartTime int64    `json:"start_time"`
	Duration  int64    `json:"duration"`
}

type CastVoteRequest struct {
	OptionIndex *int `json:"option_index"`
}

// Response types

type RegisterVoterResponse struct {
	VoterToken string `json:"voter_token"`
}

type CreateBallotResponse struct {
	BallotIndex int `json:"ballot_index"`
}

type CastVoteResponse struct {
	BallotIndex int    `json:"ballot_index"`
	OptionIndex int    `json:"option_index"`
	Message     string `json:"message"`
}

type HasVotedResponse struct {
	BallotIndex int  `json:"ballot_index"`
	HasVoted    bool `json:"has_voted"`
}

type VotingCountResponse struct {
	BallotIndex int `json:"ballot_index"`
	OptionIndex int `json:"option_index"`
	Count       int `json:"count"`
}

type ResultResponse struct {
	BallotIndex int    `json:"ballot_index"`
	Status      string `json:"status"`
	Tallies     []int  `json:"tallies"`
	TotalVotes  int    `json:"total_votes"`
}

type WinnersResponse struct {
	BallotIndex int    `json:"ballot_index"`
	Status      string `json:"status"`
	Winners     []bool `json:"winners"`
}

// Domain types

type Ballot struct {
	Index     int      `json:"ballot_index"`
	Title     string   `json:"title"`
	Options   []string `json:"options"`
	StartTime int64    `json:"start_time"`
	Duration  int64    `json:"duration"`
	EndTime   int64    `json:"end_time"`
	Status    string   `json:"status"`
}

type ListBallotsResponse struct {
	Ballots []Ballot `json:"ballots"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
