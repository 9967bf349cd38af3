package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestStatusOpen(t *testing.T) {
	assert.True(t, StatusActive.Open())
	assert.True(t, StatusOverdue.Open())
	assert.False(t, StatusReturned.Open())
}

func TestOverdueAsOf(t *testing.T) {
	due := time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)
	loan := &Loan{Status: StatusActive, DueDate: due}

	assert.False(t, loan.OverdueAsOf(due.Add(-time.Hour)))
	// Strict comparison: due exactly now is not overdue yet.
	assert.False(t, loan.OverdueAsOf(due))
	assert.True(t, loan.OverdueAsOf(due.Add(time.Second)))

	loan.Status = StatusReturned
	assert.False(t, loan.OverdueAsOf(due.Add(time.Hour)))
}
