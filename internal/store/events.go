package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"

	"clarity-board/internal/model"
)

func (s Store) appendEventTx(ctx context.Context, tx *sql.Tx, typ, entityID string, payload any) error {
	raw, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	var seq int64
	if err := tx.QueryRowContext(ctx, `SELECT COALESCE(MAX(created_seq), 0) + 1 FROM events`).Scan(&seq); err != nil {
		return err
	}
	_, err = tx.ExecContext(ctx, `INSERT INTO events(event_id, entity_id, type, actor_id, payload_json, issued_at_unixms, created_seq)
		VALUES(?, ?, ?, ?, ?, ?, ?)`,
		uuid.NewString(), entityID, typ, s.actor(), string(raw), s.now().UTC().UnixMilli(), seq)
	return err
}

// Events returns the most recent events, oldest first. An empty itemID means
// every entity. limit <= 0 means no limit.
func (s Store) Events(ctx context.Context, itemID string, limit int) ([]model.Event, error) {
	db, err := s.openSQLite(ctx)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	q := `SELECT event_id, entity_id, type, actor_id, payload_json, issued_at_unixms FROM events`
	var args []any
	if id := strings.TrimSpace(itemID); id != "" {
		q += ` WHERE entity_id = ?`
		args = append(args, id)
	}
	q += ` ORDER BY created_seq DESC`
	if limit > 0 {
		q += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Event
	for rows.Next() {
		var (
			ev  model.Event
			raw string
			ms  int64
		)
		if err := rows.Scan(&ev.ID, &ev.EntityID, &ev.Type, &ev.ActorID, &raw, &ms); err != nil {
			return nil, err
		}
		var payload any
		if err := json.Unmarshal([]byte(raw), &payload); err != nil {
			return nil, err
		}
		ev.Payload = payload
		ev.TS = time.UnixMilli(ms).UTC()
		out = append(out, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return out, nil
}
