// Copyright 2026 The LUCI Authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package tasks is a small to-do list kept in Cloud Datastore.
package tasks

import (
	"context"
	"fmt"
	"io"
	"time"

	"go.chromium.org/luci/common/clock"
	"go.chromium.org/luci/common/errors"
	"go.chromium.org/luci/gae/service/datastore"
)

// Task is a to-do item.
type Task struct {
	_kind  string                `gae:"$kind,Task"`
	_extra datastore.PropertyMap `gae:"-,extra"`

	ID          int64     `gae:"$id"`
	Description string    `gae:",noindex"`
	Created     time.Time
	Done        bool
}

// AddTask stores a new task and returns it with its allocated ID.
func AddTask(ctx context.Context, desc string) (*Task, error) {
	t := &Task{
		Description: desc,
		Created:     clock.Now(ctx).UTC(),
	}
	if err := datastore.Put(ctx, t); err != nil {
		return nil, errors.Annotate(err, "adding task").Err()
	}
	return t, nil
}

// MarkDone marks a task as done.
func MarkDone(ctx context.Context, id int64) error {
	err := datastore.RunInTransaction(ctx, func(ctx context.Context) error {
		t := &Task{ID: id}
		switch err := datastore.Get(ctx, t); {
		case errors.Is(err, datastore.ErrNoSuchEntity):
			return errors.Reason("task %d doesn't exist", id).Err()
		case err != nil:
			return err
		}
		t.Done = true
		return datastore.Put(ctx, t)
	}, nil)
	return errors.Annotate(err, "marking task %d done", id).Err()
}

// ListTasks returns all tasks, oldest first.
func ListTasks(ctx context.Context) ([]*Task, error) {
	var tasks []*Task
	q := datastore.NewQuery("Task").Order("Created")
	if err := datastore.GetAll(ctx, q, &tasks); err != nil {
		return nil, errors.Annotate(err, "listing tasks").Err()
	}
	return tasks, nil
}

// DeleteTask deletes a task. Deleting a missing task is not an error.
func DeleteTask(ctx context.Context, id int64) error {
	return errors.Annotate(datastore.Delete(ctx, &Task{ID: id}), "deleting task %d", id).Err()
}

// FormatTasks prints one line per task.
func FormatTasks(w io.Writer, tasks []*Task) {
	for _, t := range tasks {
		if t.Done {
			fmt.Fprintf(w, "%d: %s (done)\n", t.ID, t.Description)
		} else {
			fmt.Fprintf(w, "%d: %s (created %s)\n", t.ID, t.Description, t.Created.Format(time.RFC3339))
		}
	}
}
