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


package securitycenter

import (
	"context"
	"flag"

	securitycenter "cloud.google.com/go/securitycenter/apiv1"
	"github.com/maruel/subcommands"

	"github.com/luci/gcpsamples/common/samplecli"
)

func newClient(ctx context.Context, _ string) (*securitycenter.Client, error) {
	return securitycenter.NewClient(ctx)
}

// Commands returns the Security Command Center subcommands.
func Commands() []*subcommands.Command {
	return []*subcommands.Command{
		samplecli.Spec{
			UsageLine: "scc-list-sources <organization-id>",
			ShortDesc: "lists the finding sources of an organization",
			MinArgs:   1,
			MaxArgs:   1,
			Exec: samplecli.WithClient(newClient, func(ctx context.Context, r *samplecli.Run, c *securitycenter.Client, args []string) error {
				_, err := ListSources(ctx, r.Stdout(), c, args[0])
				return err
			}),
		}.Command(),
		samplecli.Spec{
			UsageLine: "scc-list-findings [-source S] [-filter F] <organization-id>",
			ShortDesc: "lists the findings of an organization",
			MinArgs:   1,
			MaxArgs:   1,
			Build: func(fs *flag.FlagSet) samplecli.Exec {
				source := fs.String("source", AllSources, "Source ID, all sources by default.")
				filter := fs.String("filter", "", `Finding filter, e.g. state="ACTIVE".`)
				return samplecli.WithClient(newClient, func(ctx context.Context, r *samplecli.Run, c *securitycenter.Client, args []string) error {
					_, err := ListFindings(ctx, r.Stdout(), c, SourcePath(args[0], *source), *filter)
					return err
				})
			},
		}.Command(),
	}
}
