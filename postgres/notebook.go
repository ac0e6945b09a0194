// Copyright 2015-2017 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

package postgres

import (
	"database/sql"

	"github.com/lib/pq"
	"github.com/ugorji/go/codec"

	"github.com/diffeo/go-notebook/notebook"
)

// encodeContent serializes a content dictionary for a BYTEA column.
func encodeContent(content map[string]interface{}) ([]byte, error) {
	if content == nil {
		return nil, nil
	}
	var out []byte
	encoder := codec.NewEncoderBytes(&out, &codec.JsonHandle{})
	err := encoder.Encode(content)
	return out, err
}

// decodeContent deserializes a BYTEA column back to a content
// dictionary.
func decodeContent(data []byte) (map[string]interface{}, error) {
	if len(data) == 0 {
		return nil, nil
	}
	content := map[string]interface{}{}
	decoder := codec.NewDecoderBytes(data, &codec.JsonHandle{})
	err := decoder.Decode(&content)
	return content, err
}

// notebookID finds the database key for a notebook, or returns
// ErrNoSuchNotebook.
func notebookID(tx *sql.Tx, name, path string) (int64, error) {
	row := tx.QueryRow("SELECT id FROM notebook WHERE name=$1 AND path=$2",
		name, path)
	var id int64
	err := row.Scan(&id)
	if err == sql.ErrNoRows {
		return 0, notebook.ErrNoSuchNotebook{Name: name, Path: path}
	}
	return id, err
}

// nextName picks the first unused name in a base's sequence within one
// directory.
func nextName(tx *sql.Tx, path, base string) (string, error) {
	rows, err := tx.Query("SELECT name FROM notebook WHERE path=$1", path)
	if err != nil {
		return "", err
	}
	taken := map[string]struct{}{}
	var name string
	err = scanRows(rows, func() error {
		if err := rows.Scan(&name); err != nil {
			return err
		}
		taken[name] = struct{}{}
		return nil
	})
	if err != nil {
		return "", err
	}
	for n := 0; ; n++ {
		candidate := notebook.IncrementName(base, n)
		if _, used := taken[candidate]; !used {
			return candidate, nil
		}
	}
}

func (s *pgStore) ListNotebooks(path string) ([]notebook.Model, error) {
	path = notebook.NormalizePath(path)
	models := []notebook.Model{}
	params := queryParams{}
	query := buildSelect(
		[]string{"name", "last_modified"},
		[]string{"notebook"},
		[]string{"path=" + params.Param(path)},
	) + " ORDER BY name"
	err := queryAndScan(s, query, params, func(rows *sql.Rows) error {
		var (
			name string
			mod  pq.NullTime
		)
		if err := rows.Scan(&name, &mod); err != nil {
			return err
		}
		models = append(models, notebook.Model{
			Name:         name,
			Path:         path,
			LastModified: nullTimeToTime(mod),
		})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return models, nil
}

func (s *pgStore) GetNotebook(name, path string) (model notebook.Model, err error) {
	path = notebook.NormalizePath(path)
	err = withTx(s, true, func(tx *sql.Tx) error {
		row := tx.QueryRow(
			"SELECT content, last_modified FROM notebook WHERE name=$1 AND path=$2",
			name, path)
		var (
			data []byte
			mod  pq.NullTime
		)
		err := row.Scan(&data, &mod)
		if err == sql.ErrNoRows {
			return notebook.ErrNoSuchNotebook{Name: name, Path: path}
		}
		if err != nil {
			return err
		}
		content, err := decodeContent(data)
		if err != nil {
			return err
		}
		model = notebook.Model{
			Name:         name,
			Path:         path,
			Content:      content,
			LastModified: nullTimeToTime(mod),
		}
		return nil
	})
	return
}

func (s *pgStore) NotebookExists(name, path string) (exists bool, err error) {
	path = notebook.NormalizePath(path)
	err = withTx(s, true, func(tx *sql.Tx) error {
		_, err := notebookID(tx, name, path)
		if err == nil {
			exists = true
			return nil
		}
		if _, missing := err.(notebook.ErrNoSuchNotebook); missing {
			return nil
		}
		return err
	})
	return
}

func (s *pgStore) CreateNotebook(model notebook.Model, path string) (out notebook.Model, err error) {
	path = notebook.NormalizePath(path)
	err = withTx(s, false, func(tx *sql.Tx) error {
		name := model.Name
		var err error
		if name == "" {
			name, err = nextName(tx, path, notebook.UntitledBase)
			if err != nil {
				return err
			}
		} else if !notebook.ValidName(name) {
			return notebook.ErrBadNotebookName
		}

		// An explicit name lands even if taken, replacing the
		// previous notebook; its checkpoints go away with the
		// foreign key cascade.
		_, err = tx.Exec("DELETE FROM notebook WHERE name=$1 AND path=$2",
			name, path)
		if err != nil {
			return err
		}

		data, err := encodeContent(model.Content)
		if err != nil {
			return err
		}
		now := sqlNow(s.clock.Now())
		params := queryParams{}
		fields := fieldList{}
		fields.Add(&params, "name", name)
		fields.Add(&params, "path", path)
		fields.Add(&params, "content", data)
		fields.Add(&params, "last_modified", timeToNullTime(now))
		_, err = tx.Exec(fields.InsertStatement("notebook"), params...)
		if err != nil {
			return err
		}

		content, err := decodeContent(data)
		if err != nil {
			return err
		}
		out = notebook.Model{
			Name:         name,
			Path:         path,
			Content:      content,
			LastModified: now,
		}
		return nil
	})
	return
}

func (s *pgStore) SaveNotebook(model notebook.Model, name, path string) (out notebook.Model, err error) {
	path = notebook.NormalizePath(path)
	err = withTx(s, false, func(tx *sql.Tx) error {
		id, err := notebookID(tx, name, path)
		if err != nil {
			return err
		}
		data, err := encodeContent(model.Content)
		if err != nil {
			return err
		}
		now := sqlNow(s.clock.Now())
		params := queryParams{}
		fields := fieldList{}
		fields.Add(&params, "content", data)
		fields.Add(&params, "last_modified", timeToNullTime(now))
		query := buildUpdate("notebook", fields.UpdateChanges(),
			[]string{"id=" + params.Param(id)})
		_, err = tx.Exec(query, params...)
		if err != nil {
			return err
		}
		content, err := decodeContent(data)
		if err != nil {
			return err
		}
		out = notebook.Model{
			Name:         name,
			Path:         path,
			Content:      content,
			LastModified: now,
		}
		return nil
	})
	return
}

func (s *pgStore) UpdateNotebook(model notebook.Model, name, path string) (out notebook.Model, err error) {
	path = notebook.NormalizePath(path)
	newName := model.Name
	newPath := notebook.NormalizePath(model.Path)
	err = withTx(s, false, func(tx *sql.Tx) error {
		id, err := notebookID(tx, name, path)
		if err != nil {
			return err
		}
		if newName == "" {
			newName = name
		} else if !notebook.ValidName(newName) {
			return notebook.ErrBadNotebookName
		}
		if model.Path == "" {
			newPath = path
		}

		if newName != name || newPath != path {
			_, err = notebookID(tx, newName, newPath)
			if err == nil {
				return notebook.ErrNotebookExists{Name: newName, Path: newPath}
			}
			if _, missing := err.(notebook.ErrNoSuchNotebook); !missing {
				return err
			}
			params := queryParams{}
			fields := fieldList{}
			fields.Add(&params, "name", newName)
			fields.Add(&params, "path", newPath)
			query := buildUpdate("notebook", fields.UpdateChanges(),
				[]string{"id=" + params.Param(id)})
			_, err = tx.Exec(query, params...)
			if err != nil {
				return err
			}
		}

		row := tx.QueryRow("SELECT content, last_modified FROM notebook WHERE id=$1", id)
		var (
			data []byte
			mod  pq.NullTime
		)
		if err := row.Scan(&data, &mod); err != nil {
			return err
		}
		content, err := decodeContent(data)
		if err != nil {
			return err
		}
		out = notebook.Model{
			Name:         newName,
			Path:         newPath,
			Content:      content,
			LastModified: nullTimeToTime(mod),
		}
		return nil
	})
	return
}

func (s *pgStore) CopyNotebook(fromName, toName, path string) (out notebook.Model, err error) {
	path = notebook.NormalizePath(path)
	err = withTx(s, false, func(tx *sql.Tx) error {
		row := tx.QueryRow(
			"SELECT content FROM notebook WHERE name=$1 AND path=$2",
			fromName, path)
		var data []byte
		err := row.Scan(&data)
		if err == sql.ErrNoRows {
			return notebook.ErrNoSuchNotebook{Name: fromName, Path: path}
		}
		if err != nil {
			return err
		}

		name := toName
		if name == "" {
			name, err = nextName(tx, path, notebook.CopyBase(fromName))
			if err != nil {
				return err
			}
		} else if !notebook.ValidName(name) {
			return notebook.ErrBadNotebookName
		}

		_, err = tx.Exec("DELETE FROM notebook WHERE name=$1 AND path=$2",
			name, path)
		if err != nil {
			return err
		}
		now := sqlNow(s.clock.Now())
		params := queryParams{}
		fields := fieldList{}
		fields.Add(&params, "name", name)
		fields.Add(&params, "path", path)
		fields.Add(&params, "content", data)
		fields.Add(&params, "last_modified", timeToNullTime(now))
		_, err = tx.Exec(fields.InsertStatement("notebook"), params...)
		if err != nil {
			return err
		}
		content, err := decodeContent(data)
		if err != nil {
			return err
		}
		out = notebook.Model{
			Name:         name,
			Path:         path,
			Content:      content,
			LastModified: now,
		}
		return nil
	})
	return
}

func (s *pgStore) DeleteNotebook(name, path string) error {
	path = notebook.NormalizePath(path)
	return withTx(s, false, func(tx *sql.Tx) error {
		res, err := tx.Exec("DELETE FROM notebook WHERE name=$1 AND path=$2",
			name, path)
		if err != nil {
			return err
		}
		count, err := res.RowsAffected()
		if err != nil {
			return err
		}
		if count == 0 {
			return notebook.ErrNoSuchNotebook{Name: name, Path: path}
		}
		return nil
	})
}
