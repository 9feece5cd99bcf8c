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

// Package bigquery shows how to run queries and browse datasets in BigQuery.
package bigquery

import (
	"context"
	"fmt"
	"io"

	"cloud.google.com/go/bigquery"
	"google.golang.org/api/iterator"

	"go.chromium.org/luci/common/errors"
	"go.chromium.org/luci/common/logging"
)

// StackOverflowQuery finds the most viewed questions tagged google-bigquery.
const StackOverflowQuery = "SELECT\n" +
	"  CONCAT('https://stackoverflow.com/questions/', CAST(id AS STRING)) AS url,\n" +
	"  view_count\n" +
	"FROM `bigquery-public-data.stackoverflow.posts_questions`\n" +
	"WHERE tags LIKE '%google-bigquery%'\n" +
	"ORDER BY view_count DESC\n" +
	"LIMIT 10"

// StackOverflowRow is a row returned by StackOverflowQuery.
type StackOverflowRow struct {
	URL       string `bigquery:"url"`
	ViewCount int64  `bigquery:"view_count"`
}

// RowIterator is implemented by *bigquery.RowIterator.
type RowIterator interface {
	Next(dst any) error
}

// QueryStackOverflow runs StackOverflowQuery and prints its rows.
func QueryStackOverflow(ctx context.Context, w io.Writer, client *bigquery.Client) error {
	q := client.Query(StackOverflowQuery)
	q.Location = "US"
	job, err := q.Run(ctx)
	if err != nil {
		return errors.Annotate(err, "starting query").Err()
	}
	logging.Debugf(ctx, "Started job %s", job.ID())
	status, err := job.Wait(ctx)
	if err != nil {
		return errors.Annotate(err, "waiting for job %s", job.ID()).Err()
	}
	if err := status.Err(); err != nil {
		return errors.Annotate(err, "job %s failed", job.ID()).Err()
	}
	it, err := job.Read(ctx)
	if err != nil {
		return errors.Annotate(err, "reading results of job %s", job.ID()).Err()
	}
	return PrintRows(w, it)
}

// PrintRows prints StackOverflowRow rows until the iterator is exhausted.
func PrintRows(w io.Writer, it RowIterator) error {
	for {
		var row StackOverflowRow
		err := it.Next(&row)
		if err == iterator.Done {
			return nil
		}
		if err != nil {
			return errors.Annotate(err, "reading row").Err()
		}
		fmt.Fprintf(w, "url: %s views: %d\n", row.URL, row.ViewCount)
	}
}

// ListDatasets prints the IDs of the datasets in the client's project.
func ListDatasets(ctx context.Context, w io.Writer, client *bigquery.Client) error {
	it := client.Datasets(ctx)
	for {
		ds, err := it.Next()
		if err == iterator.Done {
			return nil
		}
		if err != nil {
			return errors.Annotate(err, "listing datasets").Err()
		}
		fmt.Fprintln(w, ds.DatasetID)
	}
}
