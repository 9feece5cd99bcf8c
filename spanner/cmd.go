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

package spanner

import (
	"context"
	"io"

	"cloud.google.com/go/spanner"
	database "cloud.google.com/go/spanner/admin/database/apiv1"
	"github.com/maruel/subcommands"

	"go.chromium.org/luci/common/errors"

	"github.com/luci/gcpsamples/common/samplecli"
)

// withDatabase runs f with a client of the database named by the first
// argument.
func withDatabase(f func(ctx context.Context, w io.Writer, client *spanner.Client) error) samplecli.Exec {
	return func(ctx context.Context, r *samplecli.Run, args []string) error {
		client, err := spanner.NewClient(ctx, args[0])
		if err != nil {
			return errors.Annotate(err, "connecting to %s", args[0]).Err()
		}
		defer client.Close()
		return f(ctx, r.Stdout(), client)
	}
}

const dbArg = "projects/P/instances/I/databases/D"

// Commands returns the Cloud Spanner subcommands.
func Commands() []*subcommands.Command {
	return []*subcommands.Command{
		samplecli.Spec{
			UsageLine: "spanner-create-database " + dbArg,
			ShortDesc: "creates the sample music database",
			MinArgs:   1,
			MaxArgs:   1,
			Exec: func(ctx context.Context, r *samplecli.Run, args []string) error {
				admin, err := database.NewDatabaseAdminClient(ctx)
				if err != nil {
					return errors.Annotate(err, "creating admin client").Err()
				}
				defer admin.Close()
				return CreateDatabase(ctx, r.Stdout(), admin, args[0])
			},
		}.Command(),
		samplecli.Spec{
			UsageLine: "spanner-insert " + dbArg,
			ShortDesc: "writes sample singers and albums",
			MinArgs:   1,
			MaxArgs:   1,
			Exec:      withDatabase(InsertSingers),
		}.Command(),
		samplecli.Spec{
			UsageLine: "spanner-query " + dbArg,
			ShortDesc: "lists singers",
			MinArgs:   1,
			MaxArgs:   1,
			Exec:      withDatabase(QuerySingers),
		}.Command(),
		samplecli.Spec{
			UsageLine: "spanner-update-budget " + dbArg,
			ShortDesc: "moves 200000 of marketing budget from album (2,2) to album (1,1)",
			MinArgs:   1,
			MaxArgs:   1,
			Exec: withDatabase(func(ctx context.Context, w io.Writer, client *spanner.Client) error {
				return UpdateBudget(ctx, w, client, spanner.Key{2, 2}, spanner.Key{1, 1}, 200000)
			}),
		}.Command(),
	}
}
