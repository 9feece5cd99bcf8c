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

package asset

import (
	"context"

	asset "cloud.google.com/go/asset/apiv1"
	"github.com/maruel/subcommands"

	"github.com/luci/gcpsamples/common/samplecli"
)

func newClient(ctx context.Context, _ string) (*asset.Client, error) {
	return asset.NewClient(ctx)
}

// Cmd returns the asset listing subcommand.
func Cmd() *subcommands.Command {
	return samplecli.Spec{
		UsageLine:    "asset-list [asset-type]...",
		ShortDesc:    "lists the project's resources, e.g. storage.googleapis.com/Bucket",
		MaxArgs:      -1,
		NeedsProject: true,
		Exec: samplecli.WithClient(newClient, func(ctx context.Context, r *samplecli.Run, c *asset.Client, args []string) error {
			_, err := ListAssets(ctx, r.Stdout(), c, "projects/"+r.ProjectID, args)
			return err
		}),
	}.Command()
}
