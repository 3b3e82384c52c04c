package results

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
)

// WriteCSV writes the export as poll metadata rows, the per-option table,
// and the detailed vote records, separated by blank rows.
func WriteCSV(w io.Writer, e Export) error {
	cw := csv.NewWriter(w)

	rows := [][]string{
		{"Poll Question", e.Poll.Question},
		{"Created By", e.CreatedBy},
		{"Created At", e.Poll.CreatedAt.Format(TimestampLayout)},
		{"Total Votes", strconv.Itoa(e.Tally.TotalVotes)},
		{},
		{"Option", "Votes", "Percentage"},
	}
	for _, opt := range e.Tally.Options {
		rows = append(rows, []string{opt.Text, strconv.Itoa(opt.Votes), fmt.Sprintf("%.1f%%", opt.Percentage)})
	}

	rows = append(rows,
		[]string{},
		[]string{"Detailed Vote Records"},
		[]string{"Username", "Option", "Vote Date"},
	)
	for _, v := range e.Votes {
		rows = append(rows, []string{v.Username, v.OptionText, v.VotedAt.Format(TimestampLayout)})
	}

	if err := cw.WriteAll(rows); err != nil {
		return fmt.Errorf("failed to write csv: %w", err)
	}
	return nil
}
