// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package report

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/olekukonko/tablewriter"

	"github.com/danielhkuo/quickly-tally/registry"
)

// BallotReport is a point-in-time view of one ballot and its tallies.
type BallotReport struct {
	Index   int
	Ballot  registry.Ballot
	Tallies []int
	Now     time.Time
}

// New reads ballot index from reg and captures its current tallies.
func New(reg *registry.Registry, index int) (*BallotReport, error) {
	b, err := reg.GetBallotByIndex(index)
	if err != nil {
		return nil, err
	}
	tallies, err := reg.GetResult(index)
	if err != nil {
		return nil, err
	}
	return &BallotReport{Index: index, Ballot: b, Tallies: tallies, Now: reg.Now()}, nil
}

// Total is the number of votes counted so far.
func (br *BallotReport) Total() int {
	total := 0
	for _, n := range br.Tallies {
		total += n
	}
	return total
}

// Timing describes the ballot window relative to Now.
func (br *BallotReport) Timing() string {
	status := br.Ballot.StatusAt(br.Now)
	switch status {
	case registry.StatusPending:
		return fmt.Sprintf("%s (starts %s)", status, humanize.RelTime(br.Ballot.StartTime, br.Now, "ago", "from now"))
	case registry.StatusActive:
		return fmt.Sprintf("%s (ends %s)", status, humanize.RelTime(br.Ballot.EndTime(), br.Now, "ago", "from now"))
	default:
		return fmt.Sprintf("%s (ended %s)", status, humanize.RelTime(br.Ballot.EndTime(), br.Now, "ago", "from now"))
	}
}

// PrintTallyTable writes a Markdown-style table of options, votes, vote
// share and winner marks.
func (br *BallotReport) PrintTallyTable(writer io.Writer) {
	fmt.Fprintf(writer, "Ballot #%d: %s\n", br.Index, br.Ballot.Title)
	fmt.Fprintf(writer, "Status: %s\n\n", br.Timing())

	table := tablewriter.NewWriter(writer)
	table.SetBorders(tablewriter.Border{Left: true, Top: false, Right: true, Bottom: false})
	table.SetCenterSeparator("|")
	table.SetHeader([]string{"#", "Option", "Votes", "Share", "Winner"})

	total := br.Total()
	winners := registry.Winners(br.Tallies)
	for i, label := range br.Ballot.Options {
		share := 0.0
		if total > 0 {
			share = float64(br.Tallies[i]) / float64(total) * 100
		}
		mark := ""
		if winners[i] {
			mark = "*"
		}
		table.Append([]string{
			strconv.Itoa(i),
			label,
			humanize.Comma(int64(br.Tallies[i])),
			fmt.Sprintf("%.1f%%", share),
			mark,
		})
	}

	table.Render()
	fmt.Fprintf(writer, "\nTotal votes: %s\n", humanize.Comma(int64(total)))
}
