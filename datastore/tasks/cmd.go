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

package tasks

import (
	"context"
	"strconv"
	"strings"

	cloudds "cloud.google.com/go/datastore"
	"github.com/maruel/subcommands"

	"go.chromium.org/luci/common/errors"
	"go.chromium.org/luci/gae/impl/cloud"

	"github.com/luci/gcpsamples/common/samplecli"
)

func newClient(ctx context.Context, project string) (*cloudds.Client, error) {
	return cloudds.NewClient(ctx, project)
}

// withDatastore runs f with a context bound to the project's datastore.
func withDatastore(f func(ctx context.Context, r *samplecli.Run, args []string) error) samplecli.Exec {
	return samplecli.WithClient(newClient, func(ctx context.Context, r *samplecli.Run, c *cloudds.Client, args []string) error {
		ctx = (&cloud.ConfigLite{ProjectID: r.ProjectID, DS: c}).Use(ctx)
		return f(ctx, r, args)
	})
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, errors.Annotate(samplecli.ErrUsage, "bad task ID %q", s).Err()
	}
	return id, nil
}

// Commands returns the task list subcommands.
func Commands() []*subcommands.Command {
	return []*subcommands.Command{
		samplecli.Spec{
			UsageLine:    "tasks-add <description>",
			ShortDesc:    "adds a task to the to-do list",
			MinArgs:      1,
			MaxArgs:      -1,
			NeedsProject: true,
			Exec: withDatastore(func(ctx context.Context, r *samplecli.Run, args []string) error {
				t, err := AddTask(ctx, strings.Join(args, " "))
				if err != nil {
					return err
				}
				FormatTasks(r.Stdout(), []*Task{t})
				return nil
			}),
		}.Command(),
		samplecli.Spec{
			UsageLine:    "tasks-done <id>",
			ShortDesc:    "marks a task as done",
			MinArgs:      1,
			MaxArgs:      1,
			NeedsProject: true,
			Exec: withDatastore(func(ctx context.Context, r *samplecli.Run, args []string) error {
				id, err := parseID(args[0])
				if err != nil {
					return err
				}
				return MarkDone(ctx, id)
			}),
		}.Command(),
		samplecli.Spec{
			UsageLine:    "tasks-list",
			ShortDesc:    "lists tasks",
			NeedsProject: true,
			Exec: withDatastore(func(ctx context.Context, r *samplecli.Run, args []string) error {
				tasks, err := ListTasks(ctx)
				if err != nil {
					return err
				}
				FormatTasks(r.Stdout(), tasks)
				return nil
			}),
		}.Command(),
		samplecli.Spec{
			UsageLine:    "tasks-delete <id>",
			ShortDesc:    "deletes a task",
			MinArgs:      1,
			MaxArgs:      1,
			NeedsProject: true,
			Exec: withDatastore(func(ctx context.Context, r *samplecli.Run, args []string) error {
				id, err := parseID(args[0])
				if err != nil {
					return err
				}
				return DeleteTask(ctx, id)
			}),
		}.Command(),
	}
}
