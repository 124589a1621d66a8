package corpus

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"
)

// ErrCorpusNotFound is returned when a named corpus does not exist in the store.
var ErrCorpusNotFound = errors.New("corpus: not found")

// Info holds the metadata for a stored corpus.
type Info struct {
	Id        int       `json:"id"`
	Name      string    `json:"name"`
	WordCount int       `json:"word_count"`
	Bytes     int       `json:"bytes"`
	AddedAt   time.Time `json:"added_at"`
}

// SetupSchema initializes the corpus table in the provided database. This
// function should be called once on a new database before any other operations
// are performed. It is idempotent and safe to call on an already-initialized
// database.
func SetupSchema(db *sql.DB) error {
	const schemaTexts = `
CREATE TABLE IF NOT EXISTS corpus_texts (
    corpus_id INTEGER PRIMARY KEY,
    corpus_name TEXT NOT NULL UNIQUE,
    content TEXT NOT NULL,
    word_count INTEGER NOT NULL,
    added_at INTEGER NOT NULL
);
`

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("could not begin transaction: %w", err)
	}
	defer func(tx *sql.Tx) {
		_ = tx.Rollback()
	}(tx)

	if _, err = tx.Exec(schemaTexts); err != nil {
		return fmt.Errorf("could not create corpus schema: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("could not commit transaction: %w", err)
	}
	return nil
}

// Store is a library of named corpus texts kept in SQLite. It stores source
// text only; models are always rebuilt from the text when needed.
type Store struct {
	db          *sql.DB
	stmtUpsert  *sql.Stmt
	stmtGetInfo *sql.Stmt
	stmtGetText *sql.Stmt
	stmtList    *sql.Stmt
	stmtRemove  *sql.Stmt
	logger      *slog.Logger
}

// NewStore creates and returns a new Store. It pre-compiles all necessary SQL
// statements, returning an error if any preparation fails. Statements prepared
// before the failure are closed again.
func NewStore(db *sql.DB) (*Store, error) {
	s := &Store{
		db:     db,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}

	statements := []struct {
		dst   **sql.Stmt
		query string
	}{
		{&s.stmtGetInfo, `SELECT corpus_id, word_count, length(CAST(content AS BLOB)), added_at FROM corpus_texts WHERE corpus_name = ?;`},
		{&s.stmtGetText, `SELECT content FROM corpus_texts WHERE corpus_name = ?;`},
		{&s.stmtList, `SELECT corpus_id, corpus_name, word_count, length(CAST(content AS BLOB)), added_at FROM corpus_texts ORDER BY corpus_name;`},
		{&s.stmtRemove, `DELETE FROM corpus_texts WHERE corpus_name = ?;`},
		{&s.stmtUpsert, `INSERT INTO corpus_texts (corpus_name, content, word_count, added_at) VALUES (?, ?, ?, ?)
ON CONFLICT(corpus_name) DO UPDATE SET content = excluded.content, word_count = excluded.word_count, added_at = excluded.added_at;`},
	}

	for _, st := range statements {
		stmt, err := db.Prepare(st.query)
		if err != nil {
			s.Close()
			return nil, fmt.Errorf("could not prepare corpus statement: %w", err)
		}
		*st.dst = stmt
	}
	return s, nil
}

// Close releases all prepared SQL statements held by the Store.
func (s *Store) Close() {
	for _, stmt := range []*sql.Stmt{s.stmtUpsert, s.stmtGetInfo, s.stmtGetText, s.stmtList, s.stmtRemove} {
		if stmt != nil {
			_ = stmt.Close()
		}
	}
}

// SetLogger sets the logger for the Store. By default, all logs are discarded.
func (s *Store) SetLogger(logger *slog.Logger) {
	if logger != nil {
		s.logger = logger
	}
}

// Add reads all of r and stores it under name, replacing any corpus already
// stored with that name.
func (s *Store) Add(ctx context.Context, name string, r io.Reader) error {
	if name == "" {
		return errors.New("corpus name must not be empty")
	}
	content, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	text := string(content)
	words := len(strings.Fields(text))

	if _, err = s.stmtUpsert.ExecContext(ctx, name, text, words, time.Now().Unix()); err != nil {
		return fmt.Errorf("could not store corpus '%s': %w", name, err)
	}

	s.logger.InfoContext(ctx, "Corpus stored",
		slog.String("corpus_name", name),
		slog.Int("word_count", words),
		slog.Int("bytes", len(content)),
	)
	return nil
}

// Get retrieves the metadata for a single corpus specified by name.
func (s *Store) Get(ctx context.Context, name string) (Info, error) {
	info := Info{Name: name}
	var added int64
	err := s.stmtGetInfo.QueryRowContext(ctx, name).Scan(&info.Id, &info.WordCount, &info.Bytes, &added)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Info{}, fmt.Errorf("%w: %s", ErrCorpusNotFound, name)
		}
		return Info{}, err
	}
	info.AddedAt = time.Unix(added, 0)
	return info, nil
}

// List retrieves metadata for every stored corpus, ordered by name.
func (s *Store) List(ctx context.Context) ([]Info, error) {
	rows, err := s.stmtList.QueryContext(ctx)
	if err != nil {
		return nil, err
	}
	defer func(rows *sql.Rows) {
		_ = rows.Close()
	}(rows)

	infos := make([]Info, 0)
	for rows.Next() {
		var info Info
		var added int64
		if err = rows.Scan(&info.Id, &info.Name, &info.WordCount, &info.Bytes, &added); err != nil {
			return nil, err
		}
		info.AddedAt = time.Unix(added, 0)
		infos = append(infos, info)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return infos, nil
}

// Remove deletes a stored corpus. Removing a corpus that does not exist
// returns ErrCorpusNotFound.
func (s *Store) Remove(ctx context.Context, name string) error {
	res, err := s.stmtRemove.ExecContext(ctx, name)
	if err != nil {
		return fmt.Errorf("could not remove corpus '%s': %w", name, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("%w: %s", ErrCorpusNotFound, name)
	}

	s.logger.InfoContext(ctx, "Corpus removed", slog.String("corpus_name", name))
	return nil
}

// Open returns a reader over the text of the named corpus.
func (s *Store) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	var content string
	err := s.stmtGetText.QueryRowContext(ctx, name).Scan(&content)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", ErrCorpusNotFound, name)
		}
		return nil, err
	}
	return io.NopCloser(strings.NewReader(content)), nil
}

// Source adapts the named corpus to the Source interface.
func (s *Store) Source(name string) Source {
	return storeSource{store: s, name: name}
}

type storeSource struct {
	store *Store
	name  string
}

func (s storeSource) Open(ctx context.Context) (io.ReadCloser, error) {
	return s.store.Open(ctx, s.name)
}

func (s storeSource) String() string {
	return "corpus:" + s.name
}
