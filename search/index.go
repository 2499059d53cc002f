// Copyright © 2025 Texelterm contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: search/index.go
// Summary: SQLite FTS5 index over evicted scrollback lines: async batch
//          writes, trigram substring search, time-ordered results.
// Usage: The host feeds the terminal's history eviction callback into
//        Add; queries return history line numbers.

package search

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

// Result is one matching history line.
type Result struct {
	LineNum   int64
	Timestamp time.Time
	Text      string
}

// Options tunes the index. The zero value is usable after
// DefaultOptions.
type Options struct {
	// Path to the SQLite database file.
	Path string

	// BatchSize is how many lines accumulate before a flush.
	BatchSize int

	// BatchTimeout bounds how long a partial batch waits.
	BatchTimeout time.Duration

	// QueueDepth is the async channel capacity. Adds beyond it are
	// dropped rather than stalling the interpreter.
	QueueDepth int
}

// DefaultOptions returns the standard tuning for a database path.
func DefaultOptions(path string) Options {
	return Options{
		Path:         path,
		BatchSize:    100,
		BatchTimeout: 5 * time.Second,
		QueueDepth:   1000,
	}
}

type entry struct {
	lineNum int64
	stamp   time.Time
	text    string
}

// Index is a SQLite-backed full-text index of scrollback history.
type Index struct {
	opts Options
	db   *sql.DB

	queue   chan entry
	stop    chan struct{}
	done    chan struct{}
	flushCh chan chan struct{}

	mu sync.RWMutex
}

const schema = `
CREATE TABLE IF NOT EXISTS lines (
    id INTEGER PRIMARY KEY,
    stamp INTEGER NOT NULL,
    content TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_lines_stamp ON lines(stamp);

CREATE VIRTUAL TABLE IF NOT EXISTS lines_fts USING fts5(
    content,
    content='lines',
    content_rowid='id',
    tokenize='trigram'
);

CREATE TRIGGER IF NOT EXISTS lines_ai AFTER INSERT ON lines BEGIN
    INSERT INTO lines_fts(rowid, content) VALUES (new.id, new.content);
END;

CREATE TRIGGER IF NOT EXISTS lines_au AFTER UPDATE ON lines BEGIN
    INSERT INTO lines_fts(lines_fts, rowid, content) VALUES ('delete', old.id, old.content);
    INSERT INTO lines_fts(rowid, content) VALUES (new.id, new.content);
END;

CREATE TRIGGER IF NOT EXISTS lines_ad AFTER DELETE ON lines BEGIN
    INSERT INTO lines_fts(lines_fts, rowid, content) VALUES ('delete', old.id, old.content);
END;
`

// Open creates or opens the index at opts.Path and starts the batch
// writer.
func Open(opts Options) (*Index, error) {
	if err := os.MkdirAll(filepath.Dir(opts.Path), 0o755); err != nil {
		return nil, fmt.Errorf("search: create dir: %w", err)
	}

	dsn := opts.Path +
		"?_pragma=journal_mode(WAL)" +
		"&_pragma=synchronous(NORMAL)" +
		"&_pragma=temp_store(MEMORY)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("search: open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("search: connect: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("search: create schema: %w", err)
	}

	ix := &Index{
		opts:    opts,
		db:      db,
		queue:   make(chan entry, opts.QueueDepth),
		stop:    make(chan struct{}),
		done:    make(chan struct{}),
		flushCh: make(chan chan struct{}),
	}
	go ix.batchWriter()
	return ix, nil
}

// Add queues one evicted history line. Blank lines are skipped; a full
// queue drops the line instead of blocking the caller.
func (ix *Index) Add(lineNum int, text string) {
	if strings.TrimSpace(text) == "" {
		return
	}
	select {
	case ix.queue <- entry{lineNum: int64(lineNum), stamp: time.Now(), text: text}:
	default:
	}
}

// batchWriter accumulates queued lines and flushes them in
// transactions.
func (ix *Index) batchWriter() {
	defer close(ix.done)

	batch := make([]entry, 0, ix.opts.BatchSize)
	timer := time.NewTimer(ix.opts.BatchTimeout)
	defer timer.Stop()

	flush := func() {
		if len(batch) == 0 {
			return
		}
		ix.writeBatch(batch)
		batch = batch[:0]
	}

	for {
		select {
		case e := <-ix.queue:
			batch = append(batch, e)
			if len(batch) >= ix.opts.BatchSize {
				flush()
				timer.Reset(ix.opts.BatchTimeout)
			}
		case <-timer.C:
			flush()
			timer.Reset(ix.opts.BatchTimeout)
		case ack := <-ix.flushCh:
			for {
				select {
				case e := <-ix.queue:
					batch = append(batch, e)
					continue
				default:
				}
				break
			}
			flush()
			close(ack)
		case <-ix.stop:
			for {
				select {
				case e := <-ix.queue:
					batch = append(batch, e)
				default:
					flush()
					return
				}
			}
		}
	}
}

func (ix *Index) writeBatch(batch []entry) {
	ix.mu.Lock()
	defer ix.mu.Unlock()

	tx, err := ix.db.Begin()
	if err != nil {
		return
	}
	stmt, err := tx.Prepare("INSERT OR REPLACE INTO lines (id, stamp, content) VALUES (?, ?, ?)")
	if err != nil {
		tx.Rollback()
		return
	}
	defer stmt.Close()
	for _, e := range batch {
		if _, err := stmt.Exec(e.lineNum, e.stamp.UnixNano(), e.text); err != nil {
			tx.Rollback()
			return
		}
	}
	tx.Commit()
}

// Delete removes one line, typically after the history is cleared up to
// that point.
func (ix *Index) Delete(lineNum int) error {
	ix.mu.Lock()
	defer ix.mu.Unlock()
	_, err := ix.db.Exec("DELETE FROM lines WHERE id = ?", lineNum)
	return err
}

// Search matches query as a literal substring and returns up to limit
// results, newest first. Queries under three bytes fall back to LIKE
// because the trigram tokenizer cannot match them.
func (ix *Index) Search(query string, limit int) ([]Result, error) {
	if query == "" {
		return nil, nil
	}

	ix.mu.RLock()
	defer ix.mu.RUnlock()

	var rows *sql.Rows
	var err error
	if len(query) < 3 {
		pattern := "%" + strings.NewReplacer("%", `\%`, "_", `\_`).Replace(query) + "%"
		rows, err = ix.db.Query(`
			SELECT id, stamp, content FROM lines
			WHERE content LIKE ? ESCAPE '\'
			ORDER BY stamp DESC LIMIT ?`, pattern, limit)
	} else {
		quoted := `"` + strings.ReplaceAll(query, `"`, `""`) + `"`
		rows, err = ix.db.Query(`
			SELECT l.id, l.stamp, l.content
			FROM lines_fts JOIN lines l ON l.id = lines_fts.rowid
			WHERE lines_fts MATCH ?
			ORDER BY l.stamp DESC LIMIT ?`, quoted, limit)
	}
	if err != nil {
		return nil, fmt.Errorf("search: query: %w", err)
	}
	defer rows.Close()
	return scanResults(rows)
}

// SearchRange restricts Search to lines indexed within [start, end].
func (ix *Index) SearchRange(query string, start, end time.Time, limit int) ([]Result, error) {
	if query == "" {
		return nil, nil
	}

	ix.mu.RLock()
	defer ix.mu.RUnlock()

	var rows *sql.Rows
	var err error
	if len(query) < 3 {
		pattern := "%" + strings.NewReplacer("%", `\%`, "_", `\_`).Replace(query) + "%"
		rows, err = ix.db.Query(`
			SELECT id, stamp, content FROM lines
			WHERE content LIKE ? ESCAPE '\' AND stamp >= ? AND stamp <= ?
			ORDER BY stamp DESC LIMIT ?`,
			pattern, start.UnixNano(), end.UnixNano(), limit)
	} else {
		quoted := `"` + strings.ReplaceAll(query, `"`, `""`) + `"`
		rows, err = ix.db.Query(`
			SELECT l.id, l.stamp, l.content
			FROM lines_fts JOIN lines l ON l.id = lines_fts.rowid
			WHERE lines_fts MATCH ? AND l.stamp >= ? AND l.stamp <= ?
			ORDER BY l.stamp DESC LIMIT ?`,
			quoted, start.UnixNano(), end.UnixNano(), limit)
	}
	if err != nil {
		return nil, fmt.Errorf("search: query: %w", err)
	}
	defer rows.Close()
	return scanResults(rows)
}

func scanResults(rows *sql.Rows) ([]Result, error) {
	var results []Result
	for rows.Next() {
		var r Result
		var stamp int64
		if err := rows.Scan(&r.LineNum, &stamp, &r.Text); err != nil {
			continue
		}
		r.Timestamp = time.Unix(0, stamp)
		results = append(results, r)
	}
	return results, rows.Err()
}

// Flush blocks until every queued line is written.
func (ix *Index) Flush() {
	ack := make(chan struct{})
	select {
	case ix.flushCh <- ack:
		<-ack
	case <-ix.stop:
	}
}

// Close drains the queue and closes the database.
func (ix *Index) Close() error {
	close(ix.stop)
	<-ix.done
	return ix.db.Close()
}
