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

package cloudtasks

import (
	"context"
	"flag"

	cloudtasks "cloud.google.com/go/cloudtasks/apiv2"
	"github.com/maruel/subcommands"

	"github.com/luci/gcpsamples/common/samplecli"
)

func newClient(ctx context.Context, _ string) (*cloudtasks.Client, error) {
	return cloudtasks.NewClient(ctx)
}

// Cmd returns the subcommand creating a task.
func Cmd() *subcommands.Command {
	return samplecli.Spec{
		UsageLine: "tasks-create [-app-engine] [-delay D] <location> <queue> <url> [payload]",
		ShortDesc: "creates a Cloud Tasks task",
		LongDesc: `Creates a task in the given queue.

By default the task POSTs the payload to an absolute URL. With -app-engine
the URL is a path on the App Engine app of the project.`,
		MinArgs:      3,
		MaxArgs:      4,
		NeedsProject: true,
		Build: func(fs *flag.FlagSet) samplecli.Exec {
			appEngine := fs.Bool("app-engine", false, "Target the App Engine app instead of an absolute URL.")
			delay := fs.Duration("delay", 0, "Schedule the task this far in the future.")
			return samplecli.WithClient(newClient, func(ctx context.Context, r *samplecli.Run, c *cloudtasks.Client, args []string) error {
				queue := QueuePath(r.ProjectID, args[0], args[1])
				var payload []byte
				if len(args) == 4 {
					payload = []byte(args[3])
				}
				var err error
				if *appEngine {
					_, err = CreateAppEngineTask(ctx, r.Stdout(), c, queue, args[2], payload, *delay)
				} else {
					_, err = CreateHTTPTask(ctx, r.Stdout(), c, queue, args[2], payload, *delay)
				}
				return err
			})
		},
	}.Command()
}
