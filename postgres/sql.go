// Copyright 2015-2017 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

package postgres

// This file contains extremely generic support code for PostgreSQL
// applications.  This is in fact exactly the sort of thing that would
// be broken out into a generic support library.
//
// There are three main things in here:
//
// (1) Functions to help with database/sql: withTx() to do work in a
//     transaction that can be retried, and scanRows() to loop over the
//     results of a multi-row SELECT
//
// (2) Data marshallers for time.Time
//
// (3) Helpers to build SQL statements (dealing entirely in strings)
//     and to manage query parameter lists: queryParams is a parameter
//     list that can produce $1, $2, ... out, and fieldList is an
//     INSERT/UPDATE key=value list

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/lib/pq"
)

// withTx calls some function with a database/sql transaction object.
// If f panics or returns a non-nil error, rolls the transaction back;
// otherwise commits it before returning.  Returns the error value from
// f, or some other error related to transaction management.
func withTx(s storable, readOnly bool, f func(*sql.Tx) error) (err error) {
	var (
		tx   *sql.Tx
		done bool
	)

	// If we have a failure, roll back; and if that rollback fails
	// and we don't yet have an error, set the error
	defer func() {
		if tx != nil && !done {
			err2 := tx.Rollback()
			if err == nil {
				err = err2
			}
		}
	}()

	// Run in a loop, repeating the work on serialization errors
	for {
		// Create the transaction
		tx, err = s.Store().db.Begin()
		if err != nil {
			return
		}

		level := "REPEATABLE READ"
		if readOnly {
			level += " READ ONLY"
		}
		_, err = tx.Exec("SET TRANSACTION ISOLATION LEVEL " + level)
		if err != nil {
			return
		}

		// Call the callback function
		err = f(tx)

		// If that succeeded, commit
		if err == nil {
			err = tx.Commit()
			done = true
		}

		// If we specifically got a serialization error,
		// retry
		if pqerr, ok := err.(*pq.Error); ok {
			if pqerr.Code == "40001" {
				err = tx.Rollback()
				if err == sql.ErrTxDone {
					// We want to roll back, but we
					// can't, because we've already
					// rolled back; not an error
					err = nil
				} else if err != nil {
					return
				}
				tx = nil
				continue
			}
		}

		break
	}

	return
}

// scanRows runs an SQL query and calls a function for each row in the
// result.  The callback function should only call the Scan() method on
// the provided Rows object; this function will take care of advancing
// through the list of rows and closing the iterator as required.
func scanRows(rows *sql.Rows, f func() error) (err error) {
	var done bool
	defer func() {
		if !done {
			err2 := rows.Close()
			if err == nil {
				err = err2
			}
		}
	}()

	for rows.Next() {
		err = f()
		if err != nil {
			return
		}
	}
	done = true
	err = rows.Err()
	return
}

// queryAndScan establishes a read-only transaction, runs query on it
// with params, and calls f for each row in it.  It is the common case
// of combining withTx() and scanRows().
func queryAndScan(s storable, query string, params queryParams, f func(*sql.Rows) error) error {
	return withTx(s, true, func(tx *sql.Tx) error {
		rows, err := tx.Query(query, params...)
		if err != nil {
			return err
		}
		return scanRows(rows, func() error {
			return f(rows)
		})
	})
}

// sqlNow truncates a clock reading to what a TIMESTAMP column can
// hold, so that the value handed back from a write matches what a
// later read will scan out.
func sqlNow(t time.Time) time.Time {
	return t.Truncate(time.Microsecond).UTC()
}

// timeToNullTime encodes a time as a pq-specific NullTime, by mapping the
// zero time to null.
func timeToNullTime(t time.Time) pq.NullTime {
	return pq.NullTime{Time: t, Valid: !t.IsZero()}
}

// nullTimeToTime decodes a pq-specific NullTime to a time, by mapping
// a null value to zero time.
func nullTimeToTime(nt pq.NullTime) time.Time {
	if nt.Valid {
		return nt.Time.UTC()
	}
	return time.Time{}
}

// buildSelect constructs a simple SQL SELECT statement by string
// concatenation.  All of the conditions are ANDed together.
func buildSelect(outputs, tables, conditions []string) string {
	query := "SELECT "
	query += strings.Join(outputs, ", ")
	query += " FROM "
	query += strings.Join(tables, ", ")
	if len(conditions) > 0 {
		query += " WHERE "
		query += strings.Join(conditions, " AND ")
	}
	return query
}

// buildUpdate constructs a simple SQL UPDATE statement by string
// concatenation.  All of the conditions are ANDed together.
func buildUpdate(table string, changes, conditions []string) string {
	query := "UPDATE " + table
	if len(changes) > 0 {
		query += " SET " + strings.Join(changes, ", ")
	}
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	return query
}

// queryParams wraps a list of query parameters.
type queryParams []interface{}

// Param adds a parameter to the query parameter list, returning its
// position as $1, $2, ...
func (qp *queryParams) Param(param interface{}) string {
	*qp = append(*qp, param)
	return fmt.Sprintf("$%v", len(*qp))
}

// fieldPair is a pair of values in a fieldList.
type fieldPair struct {
	Field string
	Value string
}

// AsEquals converts a pair into an (unquoted) "field=value" SQL fragment.
func (fp fieldPair) AsEquals() string {
	return fp.Field + "=" + fp.Value
}

// fieldList is a list of "field=value" pairs as appears in SQL INSERT
// and UPDATE statements.
type fieldList struct {
	Fields []fieldPair
}

// Add appends a name and dynamic value to the field list.
func (f *fieldList) Add(qp *queryParams, field string, value interface{}) {
	f.AddDirect(field, qp.Param(value))
}

// AddDirect appends a name and fixed value to the field list.  value
// is an unquoted SQL string.
func (f *fieldList) AddDirect(field, value string) {
	f.Fields = append(f.Fields, fieldPair{Field: field, Value: value})
}

// MapFields converts a field list to a string slice by calling a
// function on every field pair.
func (f fieldList) MapFields(mf func(fp fieldPair) string) []string {
	result := make([]string, len(f.Fields))
	for i, field := range f.Fields {
		result[i] = mf(field)
	}
	return result
}

// FieldNames returns just the field names out as an array.
func (f fieldList) FieldNames() []string {
	return f.MapFields(func(fp fieldPair) string { return fp.Field })
}

// FieldValues returns just the field values out as an array.
func (f fieldList) FieldValues() []string {
	return f.MapFields(func(fp fieldPair) string { return fp.Value })
}

// InsertStatement produces a syntactically complete SQL INSERT statement.
func (f fieldList) InsertStatement(table string) string {
	return "INSERT INTO " + table +
		"(" + strings.Join(f.FieldNames(), ", ") + ")" +
		" VALUES(" + strings.Join(f.FieldValues(), ", ") + ")"
}

// UpdateChanges converts a field list into a list of "field=value"
// statements, suitable for the "changes" part of an UPDATE statement.
func (f fieldList) UpdateChanges() []string {
	return f.MapFields(func(fp fieldPair) string { return fp.AsEquals() })
}
