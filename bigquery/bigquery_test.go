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
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"strconv"
	"strings"
	"sync"
	"testing"

	"cloud.google.com/go/bigquery"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"

	"go.chromium.org/luci/common/errors"
	"go.chromium.org/luci/common/testing/ftt"
	"go.chromium.org/luci/common/testing/truth/assert"
	"go.chromium.org/luci/common/testing/truth/should"
)

type fakeRows struct {
	rows []StackOverflowRow
	err  error
}

func (f *fakeRows) Next(dst any) error {
	if len(f.rows) == 0 {
		if f.err != nil {
			return f.err
		}
		return iterator.Done
	}
	*dst.(*StackOverflowRow) = f.rows[0]
	f.rows = f.rows[1:]
	return nil
}

func TestPrintRows(t *testing.T) {
	t.Parallel()

	ftt.Run("PrintRows", t, func(t *ftt.Test) {
		var out strings.Builder

		t.Run("OK", func(t *ftt.Test) {
			it := &fakeRows{rows: []StackOverflowRow{
				{URL: "https://stackoverflow.com/questions/1", ViewCount: 100},
				{URL: "https://stackoverflow.com/questions/2", ViewCount: 50},
			}}
			assert.Loosely(t, PrintRows(&out, it), should.BeNil)
			assert.Loosely(t, out.String(), should.Equal(
				"url: https://stackoverflow.com/questions/1 views: 100\n"+
					"url: https://stackoverflow.com/questions/2 views: 50\n"))
		})

		t.Run("Empty", func(t *ftt.Test) {
			assert.Loosely(t, PrintRows(&out, &fakeRows{}), should.BeNil)
			assert.Loosely(t, out.String(), should.BeEmpty)
		})

		t.Run("Error", func(t *ftt.Test) {
			it := &fakeRows{
				rows: []StackOverflowRow{{URL: "u", ViewCount: 1}},
				err:  errors.New("boom"),
			}
			assert.Loosely(t, PrintRows(&out, it), should.ErrLike("boom"))
			assert.Loosely(t, out.String(), should.Equal("url: u views: 1\n"))
		})
	})
}

// fakeBigQuery serves the part of the BigQuery REST API used by this package.
//
// Every query job completes immediately and returns rows.
type fakeBigQuery struct {
	rows     [][]string // url, view_count
	datasets []string

	m       sync.Mutex
	queries []string
}

func (f *fakeBigQuery) submitted() []string {
	f.m.Lock()
	defer f.m.Unlock()
	return append([]string(nil), f.queries...)
}

func (f *fakeBigQuery) job(project, id, query string) map[string]any {
	return map[string]any{
		"jobReference": map[string]any{"projectId": project, "jobId": id, "location": "US"},
		"configuration": map[string]any{
			"query": map[string]any{
				"query":        query,
				"useLegacySql": false,
				"destinationTable": map[string]any{
					"projectId": project,
					"datasetId": "_anon",
					"tableId":   "anon_" + id,
				},
			},
		},
		"status":     map[string]any{"state": "DONE"},
		"statistics": map[string]any{"query": map[string]any{}},
	}
}

func (f *fakeBigQuery) page(r *http.Request) map[string]any {
	res := map[string]any{"totalRows": strconv.Itoa(len(f.rows))}
	if r.URL.Query().Get("maxResults") == "0" {
		return res
	}
	var rows []any
	for _, row := range f.rows {
		var cells []any
		for _, v := range row {
			cells = append(cells, map[string]any{"v": v})
		}
		rows = append(rows, map[string]any{"f": cells})
	}
	res["rows"] = rows
	return res
}

func (f *fakeBigQuery) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/bigquery/v2")
	parts := strings.Split(strings.Trim(path, "/"), "/")
	if len(parts) < 3 || parts[0] != "projects" {
		http.NotFound(w, r)
		return
	}
	project := parts[1]

	var res any
	switch {
	case r.Method == "POST" && len(parts) == 3 && parts[2] == "jobs":
		var req struct {
			JobReference struct {
				JobID string `json:"jobId"`
			} `json:"jobReference"`
			Configuration struct {
				Query struct {
					Query string `json:"query"`
				} `json:"query"`
			} `json:"configuration"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		f.m.Lock()
		f.queries = append(f.queries, req.Configuration.Query.Query)
		f.m.Unlock()
		res = f.job(project, req.JobReference.JobID, req.Configuration.Query.Query)

	case r.Method == "GET" && len(parts) == 4 && parts[2] == "jobs":
		res = f.job(project, parts[3], "")

	case r.Method == "GET" && len(parts) == 4 && parts[2] == "queries":
		page := f.page(r)
		page["jobComplete"] = true
		page["jobReference"] = map[string]any{"projectId": project, "jobId": parts[3], "location": "US"}
		page["schema"] = map[string]any{
			"fields": []any{
				map[string]any{"name": "url", "type": "STRING", "mode": "NULLABLE"},
				map[string]any{"name": "view_count", "type": "INTEGER", "mode": "NULLABLE"},
			},
		}
		res = page

	case r.Method == "GET" && len(parts) == 7 && parts[2] == "datasets" && parts[6] == "data":
		res = f.page(r)

	case r.Method == "GET" && len(parts) == 3 && parts[2] == "datasets":
		var ds []any
		for _, id := range f.datasets {
			ds = append(ds, map[string]any{
				"id":               project + ":" + id,
				"datasetReference": map[string]any{"projectId": project, "datasetId": id},
			})
		}
		res = map[string]any{"datasets": ds}

	default:
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(res)
}

func TestWithFakeBigQuery(t *testing.T) {
	t.Parallel()

	ftt.Run("With fake BigQuery", t, func(t *ftt.Test) {
		ctx := context.Background()

		fake := &fakeBigQuery{
			rows: [][]string{
				{"https://stackoverflow.com/questions/11", "2000"},
				{"https://stackoverflow.com/questions/22", "1000"},
			},
			datasets: []string{"samples", "scratch"},
		}
		srv := httptest.NewServer(fake)
		t.Cleanup(srv.Close)

		client, err := bigquery.NewClient(ctx, "proj",
			option.WithEndpoint(srv.URL+"/bigquery/v2/"),
			option.WithoutAuthentication())
		assert.Loosely(t, err, should.BeNil)
		t.Cleanup(func() { client.Close() })

		var out strings.Builder

		t.Run("QueryStackOverflow", func(t *ftt.Test) {
			assert.Loosely(t, QueryStackOverflow(ctx, &out, client), should.BeNil)
			assert.Loosely(t, out.String(), should.Equal(
				"url: https://stackoverflow.com/questions/11 views: 2000\n"+
					"url: https://stackoverflow.com/questions/22 views: 1000\n"))
			assert.Loosely(t, fake.submitted(), should.Match([]string{StackOverflowQuery}))
		})

		t.Run("ListDatasets", func(t *ftt.Test) {
			assert.Loosely(t, ListDatasets(ctx, &out, client), should.BeNil)
			assert.Loosely(t, out.String(), should.Equal("samples\nscratch\n"))
		})
	})
}

func TestQueryStackOverflow(t *testing.T) {
	project := os.Getenv("GOLANG_SAMPLES_PROJECT_ID")
	if project == "" {
		t.Skip("GOLANG_SAMPLES_PROJECT_ID not set")
	}

	ftt.Run("Against BigQuery", t, func(t *ftt.Test) {
		ctx := context.Background()
		client, err := bigquery.NewClient(ctx, project)
		assert.Loosely(t, err, should.BeNil)
		t.Cleanup(func() { client.Close() })

		var out strings.Builder
		assert.Loosely(t, QueryStackOverflow(ctx, &out, client), should.BeNil)
		assert.Loosely(t, out.String(), should.ContainSubstring("https://stackoverflow.com/questions/"))
	})
}
