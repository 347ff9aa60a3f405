package store

import (
	"context"
)

// TableStatus summarises the state of the projects table.
type TableStatus string

// Table statuses, as printed by the status command.
const (
	StatusEmpty        TableStatus = "EMPTY"
	StatusPartial      TableStatus = "PARTIAL"
	StatusOK           TableStatus = "OK"
	StatusMissingTable TableStatus = "MISSING_TABLE"
	StatusError        TableStatus = "ERROR"
)

// StatusReport is the result of CheckStatus.
type StatusReport struct {
	Status TableStatus
	Count  int64
	Err    error
}

// CheckStatus counts rows and classifies the table against the seed size.
func CheckStatus(ctx context.Context, db *DB) StatusReport {
	count, err := NewProjectRepository(db).Count(ctx)
	if err != nil {
		if db.Dialect.isMissingTable(err) {
			return StatusReport{Status: StatusMissingTable, Err: err}
		}
		return StatusReport{Status: StatusError, Err: err}
	}

	return StatusReport{Status: classifyCount(count), Count: count}
}

func classifyCount(count int64) TableStatus {
	switch {
	case count == 0:
		return StatusEmpty
	case count < int64(SeedSize):
		return StatusPartial
	default:
		return StatusOK
	}
}
