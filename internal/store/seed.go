package store

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"clarity-board/internal/model"
	"clarity-board/internal/statusutil"
)

// SeedFile is the YAML document accepted by `seed --file`.
//
//	tasks:
//	  - title: Write release notes
//	    status: in-progress
//	    priority: high
type SeedFile struct {
	Tasks []SeedTask `yaml:"tasks"`
}

type SeedTask struct {
	ID         string `yaml:"id,omitempty"`
	Status     string `yaml:"status,omitempty"`
	model.Task `yaml:",inline"`
}

// ParseSeed decodes a seed file and resolves status aliases.
func ParseSeed(r io.Reader) ([]NewTask, error) {
	var f SeedFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("parse seed: %w", err)
	}
	out := make([]NewTask, 0, len(f.Tasks))
	for i, t := range f.Tasks {
		st := model.StatusTodo
		if strings.TrimSpace(t.Status) != "" {
			parsed, err := statusutil.Parse(t.Status)
			if err != nil {
				return nil, fmt.Errorf("tasks[%d]: %w", i, err)
			}
			st = parsed
		}
		if strings.TrimSpace(t.Title) == "" {
			return nil, fmt.Errorf("tasks[%d]: title is required", i)
		}
		out = append(out, NewTask{ID: strings.TrimSpace(t.ID), Status: st, Task: t.Task})
	}
	return out, nil
}

// ImportYAML parses a seed file and appends its tasks to the workspace.
func (s Store) ImportYAML(ctx context.Context, r io.Reader) ([]model.TaskItem, error) {
	tasks, err := ParseSeed(r)
	if err != nil {
		return nil, err
	}
	if len(tasks) == 0 {
		return []model.TaskItem{}, nil
	}
	return s.AddTasks(ctx, tasks)
}
