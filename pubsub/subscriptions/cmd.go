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

package subscriptions

import (
	"context"
	"flag"
	"time"

	"cloud.google.com/go/pubsub"
	"github.com/maruel/subcommands"

	"go.chromium.org/luci/common/errors"

	"github.com/luci/gcpsamples/common/samplecli"
)

func newClient(ctx context.Context, project string) (*pubsub.Client, error) {
	return pubsub.NewClient(ctx, project)
}

// Commands returns the subscription subcommands.
func Commands() []*subcommands.Command {
	return []*subcommands.Command{
		samplecli.Spec{
			UsageLine:    "pubsub-create-subscription [-push-endpoint URL] <topic> <subscription>",
			ShortDesc:    "creates a Pub/Sub subscription",
			MinArgs:      2,
			MaxArgs:      2,
			NeedsProject: true,
			Build: func(fs *flag.FlagSet) samplecli.Exec {
				endpoint := fs.String("push-endpoint", "", "Create a push subscription delivering to this URL.")
				return samplecli.WithClient(newClient, func(ctx context.Context, r *samplecli.Run, c *pubsub.Client, args []string) error {
					return Create(ctx, r.Stdout(), c, args[0], args[1], *endpoint)
				})
			},
		}.Command(),
		samplecli.Spec{
			UsageLine:    "pubsub-pull [-max N] [-timeout D] <subscription>",
			ShortDesc:    "receives messages from a Pub/Sub subscription",
			MinArgs:      1,
			MaxArgs:      1,
			NeedsProject: true,
			Build: func(fs *flag.FlagSet) samplecli.Exec {
				maxMessages := fs.Int("max", 10, "Stop after this many messages.")
				timeout := fs.Duration("timeout", 30*time.Second, "Stop after this long.")
				pull := samplecli.WithClient(newClient, func(ctx context.Context, r *samplecli.Run, c *pubsub.Client, args []string) error {
					_, err := Pull(ctx, r.Stdout(), c, args[0], *maxMessages, *timeout)
					return err
				})
				return func(ctx context.Context, r *samplecli.Run, args []string) error {
					if *maxMessages < 1 {
						return errors.Annotate(samplecli.ErrUsage, "-max must be at least 1").Err()
					}
					return pull(ctx, r, args)
				}
			},
		}.Command(),
		samplecli.Spec{
			UsageLine:    "pubsub-delete-subscription <subscription>",
			ShortDesc:    "deletes a Pub/Sub subscription",
			MinArgs:      1,
			MaxArgs:      1,
			NeedsProject: true,
			Exec: samplecli.WithClient(newClient, func(ctx context.Context, r *samplecli.Run, c *pubsub.Client, args []string) error {
				return Delete(ctx, r.Stdout(), c, args[0])
			}),
		}.Command(),
	}
}
