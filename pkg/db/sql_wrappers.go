// Package db pkg/db/sql_wrappers.go provides wrappers for the sql package to implement the
// interfaces defined in pkg/db/interfaces.go. This allows the concrete sql package types to
// be used in the db.Service interface, which is useful for testing and for decoupling the
// db.Service interface from the sql package.
package db

import (
	"database/sql"
	"log"
)

// SQLRow wraps sql.Row to implement Row interface.
type SQLRow struct {
	*sql.Row
}

// SQLRows wraps sql.Rows to implement Rows interface.
type SQLRows struct {
	*sql.Rows
}

// SQLResult wraps sql.Result to implement Result interface.
type SQLResult struct {
	sql.Result
}

// SQLTx wraps sql.Tx to implement Transaction interface.
type SQLTx struct {
	*sql.Tx
}

func (tx *SQLTx) Exec(query string, args ...interface{}) (Result, error) {
	result, err := tx.Tx.Exec(query, args...)
	if err != nil {
		return nil, err
	}

	return &SQLResult{result}, nil
}

func (tx *SQLTx) Query(query string, args ...interface{}) (Rows, error) {
	rows, err := tx.Tx.Query(query, args...)
	if err != nil {
		return nil, err
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &SQLRows{rows}, nil
}

func (tx *SQLTx) QueryRow(query string, args ...interface{}) Row {
	return &SQLRow{tx.Tx.QueryRow(query, args...)}
}

func ToTransaction(tx *sql.Tx) Transaction {
	return &SQLTx{tx}
}

func ToResult(result sql.Result) Result {
	return &SQLResult{result}
}

func ToRow(row *sql.Row) Row {
	return &SQLRow{row}
}

// ToTx converts from our interface type back to concrete sql.Tx when needed.
func ToTx(tx Transaction) (*sql.Tx, error) {
	sqlTx, ok := tx.(*SQLTx)
	if !ok {
		return nil, ErrInvalidTransaction
	}

	return sqlTx.Tx, nil
}

// CloseRows safely closes a Rows type and logs any error.
func CloseRows(rows Rows) {
	if err := rows.Close(); err != nil {
		log.Printf("failed to close rows: %v", err)
	}
}
