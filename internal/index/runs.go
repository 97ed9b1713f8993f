package index

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"mediastack/internal/logging"
	"mediastack/internal/services"
	"mediastack/internal/stack"
)

const defaultListLimit = 20

// RunSummary is one row of the run history.
type RunSummary struct {
	ID             string    `json:"id"`
	Root           string    `json:"root"`
	CreatedAt      time.Time `json:"created_at"`
	StackCount     int       `json:"stack_count"`
	UnstackedCount int       `json:"unstacked_count"`
}

// Run is a stored resolution run with its full result.
type Run struct {
	RunSummary
	Result stack.Result `json:"result"`
}

// NewRunID returns a fresh run identifier.
func NewRunID() string {
	return uuid.NewString()
}

// SaveRun records result under the run id carried by ctx, or a new one when
// ctx has none.
func (s *Store) SaveRun(ctx context.Context, root string, result stack.Result) (*RunSummary, error) {
	if strings.TrimSpace(root) == "" {
		return nil, services.Wrap(services.ErrInvalidArgument, "index", "save run", "root is empty", nil)
	}
	id, ok := services.RunIDFromContext(ctx)
	if !ok {
		id = NewRunID()
	}
	summary := &RunSummary{
		ID:             id,
		Root:           root,
		CreatedAt:      s.now().UTC(),
		StackCount:     len(result.Stacks),
		UnstackedCount: len(result.Unstacked),
	}

	err := s.withWriteLock(ctx, func() error {
		return s.insertRun(ctx, summary, result)
	})
	if err != nil {
		return nil, err
	}

	logging.WithContext(services.WithRunID(ctx, id), s.logger).Info("run saved",
		logging.String(logging.FieldEventType, "run_saved"),
		logging.String("root", root),
		logging.Int("stacks", summary.StackCount),
		logging.Int("unstacked", summary.UnstackedCount))
	return summary, nil
}

func (s *Store) insertRun(ctx context.Context, summary *RunSummary, result stack.Result) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin run tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO runs (id, root, created_at, stack_count, unstacked_count) VALUES (?, ?, ?, ?, ?)`,
		summary.ID,
		summary.Root,
		summary.CreatedAt.Format(time.RFC3339Nano),
		summary.StackCount,
		summary.UnstackedCount,
	); err != nil {
		return fmt.Errorf("insert run: %w", err)
	}

	for i, st := range result.Stacks {
		filesJSON, err := json.Marshal(st.Files)
		if err != nil {
			return fmt.Errorf("marshal stack files: %w", err)
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO run_stacks (run_id, position, name, expression, is_folder, files_json) VALUES (?, ?, ?, ?, ?, ?)`,
			summary.ID, i, st.Name, st.Expression, boolToInt(st.IsFolderStack), string(filesJSON),
		); err != nil {
			return fmt.Errorf("insert stack %d: %w", i, err)
		}
	}

	for i, id := range result.Unstacked {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO run_unstacked (run_id, position, entry_id) VALUES (?, ?, ?)`,
			summary.ID, i, id,
		); err != nil {
			return fmt.Errorf("insert unstacked %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit run: %w", err)
	}
	return nil
}

// ListRuns returns the most recent runs first. A non-positive limit uses
// the default page size.
func (s *Store) ListRuns(ctx context.Context, limit int) ([]RunSummary, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, root, created_at, stack_count, unstacked_count
         FROM runs ORDER BY rowid DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var runs []RunSummary
	for rows.Next() {
		summary, err := scanSummary(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, *summary)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}
	return runs, nil
}

// GetRun loads a run by id or by an unambiguous id prefix.
func (s *Store) GetRun(ctx context.Context, id string) (*Run, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, services.Wrap(services.ErrInvalidArgument, "index", "get run", "run id is empty", nil)
	}

	fullID, err := s.resolveID(ctx, id)
	if err != nil {
		return nil, err
	}

	row := s.db.QueryRowContext(ctx,
		`SELECT id, root, created_at, stack_count, unstacked_count FROM runs WHERE id = ?`, fullID)
	summary, err := scanSummary(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, services.Wrap(services.ErrNotFound, "index", "get run", id, nil)
	}
	if err != nil {
		return nil, err
	}

	run := &Run{RunSummary: *summary}
	if run.Result.Stacks, err = s.loadStacks(ctx, fullID); err != nil {
		return nil, err
	}
	if run.Result.Unstacked, err = s.loadUnstacked(ctx, fullID); err != nil {
		return nil, err
	}
	return run, nil
}

func (s *Store) resolveID(ctx context.Context, prefix string) (string, error) {
	escaped := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(prefix)
	rows, err := s.db.QueryContext(ctx,
		`SELECT id FROM runs WHERE id LIKE ? ESCAPE '\' ORDER BY id LIMIT 2`, escaped+"%")
	if err != nil {
		return "", fmt.Errorf("resolve run id: %w", err)
	}
	defer rows.Close()

	var matches []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return "", fmt.Errorf("scan run id: %w", err)
		}
		matches = append(matches, id)
	}
	if err := rows.Err(); err != nil {
		return "", fmt.Errorf("iterate run ids: %w", err)
	}

	switch {
	case len(matches) == 0:
		return "", services.Wrap(services.ErrNotFound, "index", "get run", prefix, nil)
	case len(matches) > 1 && matches[0] != prefix:
		return "", services.Wrap(services.ErrInvalidArgument, "index", "get run", "run id prefix "+prefix+" is ambiguous", nil)
	}
	return matches[0], nil
}

func (s *Store) loadStacks(ctx context.Context, runID string) ([]stack.Stack, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT name, expression, is_folder, files_json FROM run_stacks WHERE run_id = ? ORDER BY position`, runID)
	if err != nil {
		return nil, fmt.Errorf("load stacks: %w", err)
	}
	defer rows.Close()

	stacks := []stack.Stack{}
	for rows.Next() {
		var (
			st        stack.Stack
			isFolder  int
			filesJSON string
		)
		if err := rows.Scan(&st.Name, &st.Expression, &isFolder, &filesJSON); err != nil {
			return nil, fmt.Errorf("scan stack: %w", err)
		}
		if err := json.Unmarshal([]byte(filesJSON), &st.Files); err != nil {
			return nil, fmt.Errorf("decode stack files: %w", err)
		}
		st.IsFolderStack = isFolder != 0
		stacks = append(stacks, st)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate stacks: %w", err)
	}
	return stacks, nil
}

func (s *Store) loadUnstacked(ctx context.Context, runID string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT entry_id FROM run_unstacked WHERE run_id = ? ORDER BY position`, runID)
	if err != nil {
		return nil, fmt.Errorf("load unstacked: %w", err)
	}
	defer rows.Close()

	ids := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan unstacked: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate unstacked: %w", err)
	}
	return ids, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSummary(row rowScanner) (*RunSummary, error) {
	var (
		summary   RunSummary
		createdAt string
	)
	if err := row.Scan(&summary.ID, &summary.Root, &createdAt, &summary.StackCount, &summary.UnstackedCount); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan run: %w", err)
	}
	parsed, err := time.Parse(time.RFC3339Nano, createdAt)
	if err != nil {
		return nil, fmt.Errorf("parse run timestamp: %w", err)
	}
	summary.CreatedAt = parsed
	return &summary, nil
}

func boolToInt(v bool) int {
	if v {
		return 1
	}
	return 0
}
