package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"clarity-board/internal/board"
	"clarity-board/internal/model"
	"clarity-board/internal/statusutil"
)

const defaultActorID = "local-user"

// Store is a workspace directory backed by SQLite. It is the board's task
// directory and status persistence when running locally.
type Store struct {
	Dir     string
	ActorID string

	// Now is overridable for tests.
	Now func() time.Time
}

var (
	_ board.TaskDirectory[model.Task] = Store{}
	_ board.StatusPersistence         = Store{}
)

func (s Store) Ensure() error {
	return os.MkdirAll(s.Dir, 0o755)
}

func (s Store) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s Store) actor() string {
	if a := strings.TrimSpace(s.ActorID); a != "" {
		return a
	}
	return defaultActorID
}

// FetchAll returns every item in board order (insertion sequence).
func (s Store) FetchAll(ctx context.Context) ([]model.TaskItem, error) {
	db, err := s.openSQLite(ctx)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	rows, err := db.QueryContext(ctx, `SELECT id, status, json FROM items ORDER BY seq ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.TaskItem{}
	for rows.Next() {
		var id, status, raw string
		if err := rows.Scan(&id, &status, &raw); err != nil {
			return nil, err
		}
		var task model.Task
		if err := json.Unmarshal([]byte(raw), &task); err != nil {
			return nil, fmt.Errorf("item %s: decode payload: %w", id, err)
		}
		out = append(out, model.TaskItem{ID: id, Status: model.Status(status), Payload: task})
	}
	return out, rows.Err()
}

// SetStatus updates one item's status and records an item.set_status event in
// the same transaction. Setting the current status again is a no-op.
func (s Store) SetStatus(ctx context.Context, itemID string, status model.Status) error {
	itemID = strings.TrimSpace(itemID)
	if !status.Valid() {
		return fmt.Errorf("invalid status: %q", status)
	}

	db, err := s.openSQLite(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	tx, err := db.BeginTx(ctx, &sql.TxOptions{})
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	var prev string
	err = tx.QueryRowContext(ctx, `SELECT status FROM items WHERE id = ?`, itemID).Scan(&prev)
	if errors.Is(err, sql.ErrNoRows) {
		return board.NotFoundError{Kind: "item", ID: itemID}
	}
	if err != nil {
		return err
	}
	if model.Status(prev) == status {
		return nil
	}

	nowMs := s.now().UTC().UnixMilli()
	if _, err := tx.ExecContext(ctx, `UPDATE items SET status = ?, updated_at_unixms = ? WHERE id = ?`, string(status), nowMs, itemID); err != nil {
		return err
	}
	payload := map[string]any{
		"from": string(statusutil.Normalize(model.Status(prev))),
		"to":   string(status),
	}
	if err := s.appendEventTx(ctx, tx, "item.set_status", itemID, payload); err != nil {
		return err
	}
	return tx.Commit()
}

// NewTask describes an item to create. Empty ID means generate one.
type NewTask struct {
	ID     string
	Status model.Status
	Task   model.Task
}

// AddTasks appends items to the end of the board.
func (s Store) AddTasks(ctx context.Context, tasks []NewTask) ([]model.TaskItem, error) {
	db, err := s.openSQLite(ctx)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	tx, err := db.BeginTx(ctx, &sql.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback() }()

	var seq int64
	if err := tx.QueryRowContext(ctx, `SELECT COALESCE(MAX(seq), 0) FROM items`).Scan(&seq); err != nil {
		return nil, err
	}

	nowMs := s.now().UTC().UnixMilli()
	out := make([]model.TaskItem, 0, len(tasks))
	for _, nt := range tasks {
		if strings.TrimSpace(nt.Task.Title) == "" {
			return nil, errors.New("title is required")
		}
		id := strings.TrimSpace(nt.ID)
		if id == "" {
			id, err = newItemID(ctx, tx)
			if err != nil {
				return nil, err
			}
		}
		status := nt.Status
		if status == "" {
			status = model.StatusTodo
		}
		if !status.Valid() {
			return nil, fmt.Errorf("invalid status: %q", status)
		}
		raw, err := json.Marshal(nt.Task)
		if err != nil {
			return nil, err
		}
		seq++
		if _, err := tx.ExecContext(ctx, `INSERT INTO items(id, seq, status, json, updated_at_unixms) VALUES(?, ?, ?, ?, ?)`,
			id, seq, string(status), string(raw), nowMs); err != nil {
			return nil, fmt.Errorf("insert item %s: %w", id, err)
		}
		if err := s.appendEventTx(ctx, tx, "item.create", id, map[string]any{"title": nt.Task.Title, "status": string(status)}); err != nil {
			return nil, err
		}
		out = append(out, model.TaskItem{ID: id, Status: status, Payload: nt.Task})
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return out, nil
}
