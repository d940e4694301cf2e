// This file is part of intcode - https://github.com/db47h/intcode
//
// Copyright 2019 Denis Bernard <db047h@gmail.com>
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package trace

import (
	"database/sql"

	// Need to use SQLite connections.
	_ "github.com/mattn/go-sqlite3"

	"github.com/db47h/intcode/vm"
	"github.com/pkg/errors"
	"github.com/tebeka/atexit"
)

const createSteps = `
CREATE TABLE steps (
	machine TEXT NOT NULL,
	count   INTEGER NOT NULL,
	pc      INTEGER NOT NULL,
	rb      INTEGER NOT NULL,
	word    INTEGER NOT NULL,
	ins     TEXT NOT NULL,
	a0      INTEGER,
	a1      INTEGER,
	a2      INTEGER
)`

const insertStep = `INSERT INTO steps VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`

// SQLiteTraceWriter writes steps to the steps table of a SQLite database.
type SQLiteTraceWriter struct {
	*sql.DB
	statement *sql.Stmt

	path      string
	steps     []vm.Step
	batchSize int
	err       error
	closed    bool
}

// NewSQLiteTraceWriter creates a new SQLite database. The ".sqlite3"
// extension is added to path if missing. If path is empty, a unique file name
// is used. It is an error if the file already exists.
func NewSQLiteTraceWriter(path string) (*SQLiteTraceWriter, error) {
	path, err := fileName(path, ".sqlite3")
	if err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, errors.Wrap(err, "open trace database")
	}
	if _, err = db.Exec(createSteps); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "create steps table")
	}
	stmt, err := db.Prepare(insertStep)
	if err != nil {
		db.Close()
		return nil, errors.Wrap(err, "prepare insert")
	}
	t := &SQLiteTraceWriter{
		DB:        db,
		statement: stmt,
		path:      path,
		batchSize: 10000,
	}

	atexit.Register(func() { t.Close() })

	return t, nil
}

// Path returns the name of the database file.
func (t *SQLiteTraceWriter) Path() string {
	return t.path
}

// Trace implements vm.Tracer.
func (t *SQLiteTraceWriter) Trace(s vm.Step) {
	if t.closed || t.err != nil {
		return
	}
	t.steps = append(t.steps, s)
	if len(t.steps) >= t.batchSize {
		t.Flush()
	}
}

// Flush writes all the buffered steps to the database in a single
// transaction. Errors are sticky.
func (t *SQLiteTraceWriter) Flush() error {
	if t.err != nil || t.closed || len(t.steps) == 0 {
		return t.err
	}
	tx, err := t.Begin()
	if err != nil {
		t.err = errors.Wrap(err, "begin transaction")
		return t.err
	}
	stmt := tx.Stmt(t.statement)
	for i := range t.steps {
		s := &t.steps[i]
		var a [3]any
		for n, v := range args(s) {
			a[n] = int64(v)
		}
		_, err = stmt.Exec(s.Machine, s.Count, s.PC, s.RelativeBase, int64(s.Word), s.Ins.String(), a[0], a[1], a[2])
		if err != nil {
			tx.Rollback()
			t.err = errors.Wrapf(err, "insert step %d of machine %s", s.Count, s.Machine)
			return t.err
		}
	}
	if err = tx.Commit(); err != nil {
		t.err = errors.Wrap(err, "commit transaction")
		return t.err
	}
	t.steps = t.steps[:0]
	return nil
}

// Close flushes buffered steps and closes the database.
func (t *SQLiteTraceWriter) Close() error {
	if t.closed {
		return t.err
	}
	err := t.Flush()
	t.closed = true
	t.statement.Close()
	if cerr := t.DB.Close(); err == nil && cerr != nil {
		err = errors.Wrap(cerr, "close trace database")
		t.err = err
	}
	return err
}
