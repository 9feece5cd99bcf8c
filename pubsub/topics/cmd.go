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

package topics

import (
	"context"
	"flag"

	"cloud.google.com/go/pubsub"
	"github.com/maruel/subcommands"

	"go.chromium.org/luci/common/errors"

	"github.com/luci/gcpsamples/common/samplecli"
)

func newClient(ctx context.Context, project string) (*pubsub.Client, error) {
	return pubsub.NewClient(ctx, project)
}

// Commands returns the topic subcommands.
func Commands() []*subcommands.Command {
	return []*subcommands.Command{
		samplecli.Spec{
			UsageLine:    "pubsub-create-topic <topic>",
			ShortDesc:    "creates a Pub/Sub topic",
			MinArgs:      1,
			MaxArgs:      1,
			NeedsProject: true,
			Exec: samplecli.WithClient(newClient, func(ctx context.Context, r *samplecli.Run, c *pubsub.Client, args []string) error {
				return Create(ctx, r.Stdout(), c, args[0])
			}),
		}.Command(),
		samplecli.Spec{
			UsageLine:    "pubsub-list-topics",
			ShortDesc:    "lists Pub/Sub topics",
			NeedsProject: true,
			Exec: samplecli.WithClient(newClient, func(ctx context.Context, r *samplecli.Run, c *pubsub.Client, args []string) error {
				return List(ctx, r.Stdout(), c)
			}),
		}.Command(),
		samplecli.Spec{
			UsageLine:    "pubsub-publish [-count N] <topic> <message>",
			ShortDesc:    "publishes messages to a Pub/Sub topic",
			MinArgs:      2,
			MaxArgs:      2,
			NeedsProject: true,
			Build: func(fs *flag.FlagSet) samplecli.Exec {
				count := fs.Int("count", 1, "How many messages to publish.")
				publish := samplecli.WithClient(newClient, func(ctx context.Context, r *samplecli.Run, c *pubsub.Client, args []string) error {
					if *count > 1 {
						return PublishMany(ctx, r.Stdout(), c, args[0], args[1], *count)
					}
					return Publish(ctx, r.Stdout(), c, args[0], args[1])
				})
				return func(ctx context.Context, r *samplecli.Run, args []string) error {
					if *count < 1 {
						return errors.Annotate(samplecli.ErrUsage, "-count must be at least 1").Err()
					}
					return publish(ctx, r, args)
				}
			},
		}.Command(),
		samplecli.Spec{
			UsageLine:    "pubsub-delete-topic <topic>",
			ShortDesc:    "deletes a Pub/Sub topic",
			MinArgs:      1,
			MaxArgs:      1,
			NeedsProject: true,
			Exec: samplecli.WithClient(newClient, func(ctx context.Context, r *samplecli.Run, c *pubsub.Client, args []string) error {
				return Delete(ctx, r.Stdout(), c, args[0])
			}),
		}.Command(),
	}
}
