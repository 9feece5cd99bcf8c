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

package monitoring

import (
	"context"
	"flag"
	"strconv"

	monitoring "cloud.google.com/go/monitoring/apiv3/v2"
	"github.com/maruel/subcommands"
	"golang.org/x/time/rate"

	"go.chromium.org/luci/common/errors"

	"github.com/luci/gcpsamples/common/samplecli"
)

func newClient(ctx context.Context, _ string) (*monitoring.MetricClient, error) {
	return monitoring.NewMetricClient(ctx)
}

// Commands returns the Cloud Monitoring subcommands.
func Commands() []*subcommands.Command {
	return []*subcommands.Command{
		samplecli.Spec{
			UsageLine:    "monitoring-write <metric> <value>...",
			ShortDesc:    "writes points to a custom metric",
			LongDesc:     "Writes each value as a point of a custom gauge metric, pausing between writes.",
			MinArgs:      2,
			MaxArgs:      -1,
			NeedsProject: true,
			Exec: samplecli.WithClient(newClient, func(ctx context.Context, r *samplecli.Run, c *monitoring.MetricClient, args []string) error {
				values := make([]float64, 0, len(args)-1)
				for _, a := range args[1:] {
					v, err := strconv.ParseFloat(a, 64)
					if err != nil {
						return errors.Annotate(samplecli.ErrUsage, "bad value %q", a).Err()
					}
					values = append(values, v)
				}
				limiter := rate.NewLimiter(rate.Every(MinWriteInterval), 1)
				return WritePoints(ctx, r.Stdout(), c, r.ProjectID, args[0], values, limiter)
			}),
		}.Command(),
		samplecli.Spec{
			UsageLine:    "monitoring-list-descriptors [-filter F]",
			ShortDesc:    "lists metric descriptors",
			NeedsProject: true,
			Build: func(fs *flag.FlagSet) samplecli.Exec {
				filter := fs.String("filter", `metric.type = starts_with("custom.googleapis.com/")`, "Monitoring filter.")
				return samplecli.WithClient(newClient, func(ctx context.Context, r *samplecli.Run, c *monitoring.MetricClient, _ []string) error {
					return ListMetricDescriptors(ctx, r.Stdout(), c, r.ProjectID, *filter)
				})
			},
		}.Command(),
	}
}
