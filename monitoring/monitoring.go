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

// Package monitoring shows how to write custom metrics to Cloud Monitoring.
package monitoring

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	monitoring "cloud.google.com/go/monitoring/apiv3/v2"
	"cloud.google.com/go/monitoring/apiv3/v2/monitoringpb"
	"golang.org/x/time/rate"
	"google.golang.org/api/iterator"
	metricpb "google.golang.org/genproto/googleapis/api/metric"
	monitoredrespb "google.golang.org/genproto/googleapis/api/monitoredres"
	"google.golang.org/protobuf/types/known/timestamppb"

	"go.chromium.org/luci/common/clock"
	"go.chromium.org/luci/common/errors"
)

// CustomMetricPrefix is the prefix of all user defined metric types.
const CustomMetricPrefix = "custom.googleapis.com/"

// MinWriteInterval is how often a point may be written to one time series.
const MinWriteInterval = 5 * time.Second

// WriteCustomMetric writes one gauge point to a custom metric of the global
// resource of the project.
func WriteCustomMetric(ctx context.Context, w io.Writer, client *monitoring.MetricClient, project, metricType string, value float64) error {
	if !strings.HasPrefix(metricType, CustomMetricPrefix) {
		metricType = CustomMetricPrefix + metricType
	}
	now := timestamppb.New(clock.Now(ctx))
	err := client.CreateTimeSeries(ctx, &monitoringpb.CreateTimeSeriesRequest{
		Name: "projects/" + project,
		TimeSeries: []*monitoringpb.TimeSeries{{
			Metric: &metricpb.Metric{Type: metricType},
			Resource: &monitoredrespb.MonitoredResource{
				Type:   "global",
				Labels: map[string]string{"project_id": project},
			},
			Points: []*monitoringpb.Point{{
				Interval: &monitoringpb.TimeInterval{EndTime: now},
				Value: &monitoringpb.TypedValue{
					Value: &monitoringpb.TypedValue_DoubleValue{DoubleValue: value},
				},
			}},
		}},
	})
	if err != nil {
		return errors.Annotate(err, "writing %s", metricType).Err()
	}
	fmt.Fprintf(w, "Wrote %v to %s\n", value, metricType)
	return nil
}

// WritePoints writes values one after another, waiting on limiter before
// each write.
func WritePoints(ctx context.Context, w io.Writer, client *monitoring.MetricClient, project, metricType string, values []float64, limiter *rate.Limiter) error {
	for _, v := range values {
		if err := limiter.Wait(ctx); err != nil {
			return errors.Annotate(err, "waiting to write").Err()
		}
		if err := WriteCustomMetric(ctx, w, client, project, metricType, v); err != nil {
			return err
		}
	}
	return nil
}

// ListMetricDescriptors prints the metric types matching a filter, e.g.
// `metric.type = starts_with("custom.googleapis.com/")`.
func ListMetricDescriptors(ctx context.Context, w io.Writer, client *monitoring.MetricClient, project, filter string) error {
	it := client.ListMetricDescriptors(ctx, &monitoringpb.ListMetricDescriptorsRequest{
		Name:   "projects/" + project,
		Filter: filter,
	})
	for {
		d, err := it.Next()
		if err == iterator.Done {
			return nil
		}
		if err != nil {
			return errors.Annotate(err, "listing metric descriptors").Err()
		}
		fmt.Fprintf(w, "%s\t%s\n", d.Type, d.Description)
	}
}
