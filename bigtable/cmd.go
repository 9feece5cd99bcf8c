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

package bigtable

import (
	"context"

	"cloud.google.com/go/bigtable"
	"github.com/maruel/subcommands"

	"go.chromium.org/luci/common/errors"

	"github.com/luci/gcpsamples/common/samplecli"
)

// Cmd returns the subcommand running HelloWorld.
func Cmd() *subcommands.Command {
	return samplecli.Spec{
		UsageLine:    "bigtable-hello <instance> [table]",
		ShortDesc:    "runs the Bigtable hello world",
		MinArgs:      1,
		MaxArgs:      2,
		NeedsProject: true,
		Exec: func(ctx context.Context, r *samplecli.Run, args []string) error {
			table := "Hello-Bigtable"
			if len(args) == 2 {
				table = args[1]
			}
			admin, err := bigtable.NewAdminClient(ctx, r.ProjectID, args[0])
			if err != nil {
				return errors.Annotate(err, "creating admin client").Err()
			}
			defer admin.Close()
			client, err := bigtable.NewClient(ctx, r.ProjectID, args[0])
			if err != nil {
				return errors.Annotate(err, "creating data client").Err()
			}
			defer client.Close()
			return HelloWorld(ctx, r.Stdout(), admin, client, table)
		},
	}.Command()
}
