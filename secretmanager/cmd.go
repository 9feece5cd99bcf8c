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

package secretmanager

import (
	"context"

	secretmanager "cloud.google.com/go/secretmanager/apiv1"
	"github.com/maruel/subcommands"

	"github.com/luci/gcpsamples/common/samplecli"
)

func newClient(ctx context.Context, _ string) (*secretmanager.Client, error) {
	return secretmanager.NewClient(ctx)
}

type sampleFunc func(ctx context.Context, r *samplecli.Run, c *secretmanager.Client, args []string) error

func command(usage, short string, minArgs, maxArgs int, f sampleFunc) *subcommands.Command {
	return samplecli.Spec{
		UsageLine:    usage,
		ShortDesc:    short,
		MinArgs:      minArgs,
		MaxArgs:      maxArgs,
		NeedsProject: true,
		Exec:         samplecli.WithClient(newClient, f),
	}.Command()
}

// Commands returns the Secret Manager subcommands.
func Commands() []*subcommands.Command {
	return []*subcommands.Command{
		command("secrets-create <secret>", "creates a secret", 1, 1,
			func(ctx context.Context, r *samplecli.Run, c *secretmanager.Client, args []string) error {
				_, err := CreateSecret(ctx, r.Stdout(), c, r.ProjectID, args[0])
				return err
			}),
		command("secrets-add-version <secret> <payload>", "adds a secret version", 2, 2,
			func(ctx context.Context, r *samplecli.Run, c *secretmanager.Client, args []string) error {
				_, err := AddSecretVersion(ctx, r.Stdout(), c, SecretName(r.ProjectID, args[0]), []byte(args[1]))
				return err
			}),
		command("secrets-access <secret> [version]", "prints a secret version, latest by default", 1, 2,
			func(ctx context.Context, r *samplecli.Run, c *secretmanager.Client, args []string) error {
				version := "latest"
				if len(args) == 2 {
					version = args[1]
				}
				_, err := AccessSecretVersion(ctx, r.Stdout(), c, SecretName(r.ProjectID, args[0])+"/versions/"+version)
				return err
			}),
		command("secrets-list", "lists secrets", 0, 0,
			func(ctx context.Context, r *samplecli.Run, c *secretmanager.Client, args []string) error {
				return ListSecrets(ctx, r.Stdout(), c, r.ProjectID)
			}),
		command("secrets-delete <secret>", "deletes a secret", 1, 1,
			func(ctx context.Context, r *samplecli.Run, c *secretmanager.Client, args []string) error {
				return DeleteSecret(ctx, r.Stdout(), c, SecretName(r.ProjectID, args[0]))
			}),
		command("secrets-grant-access <secret> <member>", "grants a member read access to a secret", 2, 2,
			func(ctx context.Context, r *samplecli.Run, c *secretmanager.Client, args []string) error {
				return GrantAccess(ctx, r.Stdout(), c, SecretName(r.ProjectID, args[0]), args[1])
			}),
	}
}
