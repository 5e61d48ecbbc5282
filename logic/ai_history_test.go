package logic

import (
	"testing"
	"time"

	"studyhub/models"

	"github.com/stretchr/testify/assert"
)

// The rebuild query pulls the newest rows in descending order; the cached
// list and the response both run oldest to newest, so the rows get
// flipped. With more history than the window holds, this keeps the
// newest turns rather than the oldest.
func TestHistoryEntriesFlipsNewestFirstRows(t *testing.T) {
	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	rows := []models.AiHistory{
		{Question: "q3", Answer: "a3", CreateTime: base.Add(2 * time.Hour)},
		{Question: "q2", Answer: "a2", CreateTime: base.Add(1 * time.Hour)},
		{Question: "q1", Answer: "a1", CreateTime: base},
	}

	entries := historyEntries(rows)

	assert.Equal(t, []string{"q1", "q2", "q3"},
		[]string{entries[0].Question, entries[1].Question, entries[2].Question})
	assert.True(t, entries[0].CreateTime.Before(entries[2].CreateTime))
}

func TestHistoryEntriesEmpty(t *testing.T) {
	assert.Empty(t, historyEntries(nil))
}
