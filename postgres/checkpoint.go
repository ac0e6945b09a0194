// Copyright 2015-2017 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

package postgres

import (
	"database/sql"

	"github.com/lib/pq"
	uuid "github.com/satori/go.uuid"

	"github.com/diffeo/go-notebook/notebook"
)

// checkpointUUID parses a checkpoint id.  An id that is not even a
// UUID cannot name a stored checkpoint, so it maps to the same error a
// missing one would.
func checkpointUUID(checkpointID string) (uuid.UUID, error) {
	id, err := uuid.FromString(checkpointID)
	if err != nil {
		return uuid.Nil, notebook.ErrNoSuchCheckpoint{ID: checkpointID}
	}
	return id, nil
}

func (s *pgStore) Checkpoints(name, path string) ([]notebook.Checkpoint, error) {
	path = notebook.NormalizePath(path)
	checkpoints := []notebook.Checkpoint{}
	err := withTx(s, true, func(tx *sql.Tx) error {
		id, err := notebookID(tx, name, path)
		if err != nil {
			return err
		}
		rows, err := tx.Query(
			"SELECT id::text, last_modified FROM checkpoint "+
				"WHERE notebook_id=$1 ORDER BY seq", id)
		if err != nil {
			return err
		}
		return scanRows(rows, func() error {
			var (
				cpID string
				mod  pq.NullTime
			)
			if err := rows.Scan(&cpID, &mod); err != nil {
				return err
			}
			checkpoints = append(checkpoints, notebook.Checkpoint{
				ID:           cpID,
				LastModified: nullTimeToTime(mod),
			})
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return checkpoints, nil
}

func (s *pgStore) CreateCheckpoint(name, path string) (out notebook.Checkpoint, err error) {
	path = notebook.NormalizePath(path)
	err = withTx(s, false, func(tx *sql.Tx) error {
		id, err := notebookID(tx, name, path)
		if err != nil {
			return err
		}
		cpID := uuid.NewV4()
		now := sqlNow(s.clock.Now())
		// Snapshot the notebook's current content
		_, err = tx.Exec(
			"INSERT INTO checkpoint(id, notebook_id, content, last_modified) "+
				"SELECT $1, id, content, $2 FROM notebook WHERE id=$3",
			cpID.String(), timeToNullTime(now), id)
		if err != nil {
			return err
		}
		out = notebook.Checkpoint{ID: cpID.String(), LastModified: now}
		return nil
	})
	return
}

func (s *pgStore) RestoreCheckpoint(checkpointID, name, path string) error {
	path = notebook.NormalizePath(path)
	cpID, err := checkpointUUID(checkpointID)
	if err != nil {
		return err
	}
	return withTx(s, false, func(tx *sql.Tx) error {
		id, err := notebookID(tx, name, path)
		if err != nil {
			return err
		}
		row := tx.QueryRow(
			"SELECT content FROM checkpoint WHERE id=$1 AND notebook_id=$2",
			cpID.String(), id)
		var data []byte
		err = row.Scan(&data)
		if err == sql.ErrNoRows {
			return notebook.ErrNoSuchCheckpoint{ID: checkpointID}
		}
		if err != nil {
			return err
		}
		now := sqlNow(s.clock.Now())
		_, err = tx.Exec(
			"UPDATE notebook SET content=$1, last_modified=$2 WHERE id=$3",
			data, timeToNullTime(now), id)
		return err
	})
}

func (s *pgStore) DeleteCheckpoint(checkpointID, name, path string) error {
	path = notebook.NormalizePath(path)
	cpID, err := checkpointUUID(checkpointID)
	if err != nil {
		return err
	}
	return withTx(s, false, func(tx *sql.Tx) error {
		id, err := notebookID(tx, name, path)
		if err != nil {
			return err
		}
		res, err := tx.Exec(
			"DELETE FROM checkpoint WHERE id=$1 AND notebook_id=$2",
			cpID.String(), id)
		if err != nil {
			return err
		}
		count, err := res.RowsAffected()
		if err != nil {
			return err
		}
		if count == 0 {
			return notebook.ErrNoSuchCheckpoint{ID: checkpointID}
		}
		return nil
	})
}
