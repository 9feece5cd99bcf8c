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

package vision

import (
	"context"

	vision "cloud.google.com/go/vision/v2/apiv1"
	"github.com/maruel/subcommands"

	"github.com/luci/gcpsamples/common/samplecli"
)

func newClient(ctx context.Context, _ string) (*vision.ImageAnnotatorClient, error) {
	return vision.NewImageAnnotatorClient(ctx)
}

// Commands returns the Vision subcommands.
func Commands() []*subcommands.Command {
	return []*subcommands.Command{
		samplecli.Spec{
			UsageLine: "vision-labels <image>...",
			ShortDesc: "labels images",
			MinArgs:   1,
			MaxArgs:   -1,
			Exec: samplecli.WithClient(newClient, func(ctx context.Context, r *samplecli.Run, c *vision.ImageAnnotatorClient, args []string) error {
				if len(args) == 1 {
					return DetectLabels(ctx, r.Stdout(), c, args[0])
				}
				return DetectLabelsBatch(ctx, r.Stdout(), c, args)
			}),
		}.Command(),
		samplecli.Spec{
			UsageLine: "vision-text <image>",
			ShortDesc: "prints the text found in an image",
			MinArgs:   1,
			MaxArgs:   1,
			Exec: samplecli.WithClient(newClient, func(ctx context.Context, r *samplecli.Run, c *vision.ImageAnnotatorClient, args []string) error {
				return DetectText(ctx, r.Stdout(), c, args[0])
			}),
		}.Command(),
	}
}
