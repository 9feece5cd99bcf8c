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

package bigquery

import (
	"context"

	"cloud.google.com/go/bigquery"
	"github.com/maruel/subcommands"

	"github.com/luci/gcpsamples/common/samplecli"
)

func newClient(ctx context.Context, project string) (*bigquery.Client, error) {
	return bigquery.NewClient(ctx, project)
}

// Commands returns the BigQuery subcommands.
func Commands() []*subcommands.Command {
	return []*subcommands.Command{
		samplecli.Spec{
			UsageLine:    "bigquery-stackoverflow",
			ShortDesc:    "prints the most viewed google-bigquery questions on Stack Overflow",
			NeedsProject: true,
			Exec: samplecli.WithClient(newClient, func(ctx context.Context, r *samplecli.Run, c *bigquery.Client, _ []string) error {
				return QueryStackOverflow(ctx, r.Stdout(), c)
			}),
		}.Command(),
		samplecli.Spec{
			UsageLine:    "bigquery-list-datasets",
			ShortDesc:    "lists BigQuery datasets",
			NeedsProject: true,
			Exec: samplecli.WithClient(newClient, func(ctx context.Context, r *samplecli.Run, c *bigquery.Client, _ []string) error {
				return ListDatasets(ctx, r.Stdout(), c)
			}),
		}.Command(),
	}
}
