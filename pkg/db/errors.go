// Package errors pkg/db/errors.go provides errors for the db package.

package db

import "errors"

var (
	// Core database errors.

	ErrDatabaseError      = errors.New("database error")
	ErrInvalidTransaction = errors.New("invalid transaction type")
	ErrInvalidRows        = errors.New("invalid rows type")
	ErrInvalidResult      = errors.New("invalid result type")

	// Operation errors.

	ErrFailedToClean     = errors.New("failed to clean")
	ErrFailedToBeginTx   = errors.New("failed to begin transaction")
	ErrFailedToScan      = errors.New("failed to scan")
	ErrFailedToQuery     = errors.New("failed to query")
	ErrFailedToInsert    = errors.New("failed to insert")
	ErrFailedToUpdate    = errors.New("failed to update")
	ErrFailedToInit      = errors.New("failed to initialize schema")
	ErrFailedToEnableWAL = errors.New("failed to enable WAL mode")
	ErrFailedOpenDB      = errors.New("failed to open database")

	// Row-level errors.

	ErrAlertNotFound    = errors.New("alert not found")
	ErrDeviceNotFound   = errors.New("device not found")
	ErrNoOpenDowntime   = errors.New("no open downtime interval")
	ErrNoClosedDowntime = errors.New("no closed downtime interval")
)
