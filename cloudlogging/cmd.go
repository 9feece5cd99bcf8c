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

package cloudlogging

import (
	"context"
	"flag"
	"strings"

	"cloud.google.com/go/logging"
	"cloud.google.com/go/logging/logadmin"
	"github.com/maruel/subcommands"

	"github.com/luci/gcpsamples/common/samplecli"
)

func newClient(ctx context.Context, project string) (*logging.Client, error) {
	return logging.NewClient(ctx, project)
}

func newAdminClient(ctx context.Context, project string) (*logadmin.Client, error) {
	return logadmin.NewClient(ctx, project)
}

// Commands returns the Cloud Logging subcommands.
func Commands() []*subcommands.Command {
	return []*subcommands.Command{
		samplecli.Spec{
			UsageLine:    "logging-write [-severity S] <log> <text>...",
			ShortDesc:    "writes a log entry",
			MinArgs:      2,
			MaxArgs:      -1,
			NeedsProject: true,
			Build: func(fs *flag.FlagSet) samplecli.Exec {
				severity := fs.String("severity", "INFO", "Entry severity, e.g. DEBUG, INFO, WARNING or ERROR.")
				return samplecli.WithClient(newClient, func(ctx context.Context, r *samplecli.Run, c *logging.Client, args []string) error {
					return WriteEntry(ctx, c, args[0], strings.Join(args[1:], " "), *severity)
				})
			},
		}.Command(),
		samplecli.Spec{
			UsageLine:    "logging-list [-limit N] <log>",
			ShortDesc:    "prints the newest entries of a log",
			MinArgs:      1,
			MaxArgs:      1,
			NeedsProject: true,
			Build: func(fs *flag.FlagSet) samplecli.Exec {
				limit := fs.Int("limit", 20, "Maximum number of entries to print.")
				return samplecli.WithClient(newAdminClient, func(ctx context.Context, r *samplecli.Run, c *logadmin.Client, args []string) error {
					return ListEntries(ctx, r.Stdout(), c, r.ProjectID, args[0], *limit)
				})
			},
		}.Command(),
	}
}
