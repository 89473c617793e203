// Package redisstore keeps board items in Redis so several clients can share
// one board.
//
// Layout (prefix defaults to "board"):
//
//	<prefix>:order      list of item ids in board order
//	<prefix>:item:<id>  hash {status, payload}, payload is JSON
package redisstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/redis/go-redis/v9"

	"clarity-board/internal/board"
	"clarity-board/internal/model"
)

const DefaultPrefix = "board"

type Store struct {
	redis  *redis.Client
	prefix string
}

var (
	_ board.TaskDirectory[model.Task] = (*Store)(nil)
	_ board.StatusPersistence         = (*Store)(nil)
)

func New(client *redis.Client, prefix string) *Store {
	if client == nil {
		panic("redisstore.New: client is nil")
	}
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		prefix = DefaultPrefix
	}
	return &Store{redis: client, prefix: prefix}
}

func (s *Store) orderKey() string { return s.prefix + ":order" }

func (s *Store) itemKey(id string) string { return s.prefix + ":item:" + id }

// FetchAll returns every item listed in the order key. Ids whose hash has
// disappeared are skipped.
func (s *Store) FetchAll(ctx context.Context) ([]model.TaskItem, error) {
	ids, err := s.redis.LRange(ctx, s.orderKey(), 0, -1).Result()
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return []model.TaskItem{}, nil
	}

	cmds := make([]*redis.SliceCmd, len(ids))
	_, err = s.redis.Pipelined(ctx, func(p redis.Pipeliner) error {
		for i, id := range ids {
			cmds[i] = p.HMGet(ctx, s.itemKey(id), "status", "payload")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	out := make([]model.TaskItem, 0, len(ids))
	for i, id := range ids {
		vals := cmds[i].Val()
		if len(vals) != 2 || vals[0] == nil {
			continue
		}
		status, _ := vals[0].(string)
		var task model.Task
		if raw, ok := vals[1].(string); ok && raw != "" {
			if err := json.Unmarshal([]byte(raw), &task); err != nil {
				return nil, fmt.Errorf("item %s: decode payload: %w", id, err)
			}
		}
		out = append(out, model.TaskItem{ID: id, Status: model.Status(status), Payload: task})
	}
	return out, nil
}

// setStatusScript writes the status only if the item hash still exists.
// Returns 1 on write, 0 when the item is gone.
var setStatusScript = redis.NewScript(`
if redis.call("EXISTS", KEYS[1]) == 0 then
	return 0
end
redis.call("HSET", KEYS[1], "status", ARGV[1])
return 1
`)

// SetStatus rewrites the status field of an existing item. Other writes to the
// item's hash do not conflict with it; only a deleted item fails.
func (s *Store) SetStatus(ctx context.Context, itemID string, status model.Status) error {
	if !status.Valid() {
		return fmt.Errorf("invalid status: %q", status)
	}
	n, err := setStatusScript.Run(ctx, s.redis, []string{s.itemKey(itemID)}, string(status)).Int()
	if err != nil {
		return err
	}
	if n == 0 {
		return board.NotFoundError{Kind: "item", ID: itemID}
	}
	return nil
}

// Put writes items, appending ids that are not yet on the board. Existing ids
// keep their position.
func (s *Store) Put(ctx context.Context, items []model.TaskItem) error {
	existing, err := s.redis.LRange(ctx, s.orderKey(), 0, -1).Result()
	if err != nil {
		return err
	}
	seen := make(map[string]bool, len(existing))
	for _, id := range existing {
		seen[id] = true
	}

	_, err = s.redis.TxPipelined(ctx, func(p redis.Pipeliner) error {
		for _, it := range items {
			if strings.TrimSpace(it.ID) == "" {
				return errors.New("item id is required")
			}
			raw, err := json.Marshal(it.Payload)
			if err != nil {
				return err
			}
			p.HSet(ctx, s.itemKey(it.ID), "status", string(it.Status), "payload", string(raw))
			if !seen[it.ID] {
				p.RPush(ctx, s.orderKey(), it.ID)
				seen[it.ID] = true
			}
		}
		return nil
	})
	return err
}
