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

// Package bigtable is the Cloud Bigtable hello world: it creates a table,
// writes a few rows, reads them back and deletes the table.
package bigtable

import (
	"context"
	"fmt"
	"io"
	"slices"

	"cloud.google.com/go/bigtable"

	"go.chromium.org/luci/common/errors"
)

const (
	columnFamily = "cf1"
	column       = "greeting"
)

// Greetings are written one per row.
var Greetings = []string{"Hello World!", "Hello Cloud Bigtable!", "Hello Go!"}

// HelloWorld runs the whole walkthrough against table.
func HelloWorld(ctx context.Context, w io.Writer, admin *bigtable.AdminClient, client *bigtable.Client, table string) error {
	if err := createTable(ctx, w, admin, table); err != nil {
		return err
	}

	fmt.Fprintf(w, "Writing greeting rows to the table\n")
	tbl := client.Open(table)
	keys := make([]string, len(Greetings))
	muts := make([]*bigtable.Mutation, len(Greetings))
	for i, g := range Greetings {
		keys[i] = fmt.Sprintf("%s%d", column, i)
		muts[i] = bigtable.NewMutation()
		muts[i].Set(columnFamily, column, bigtable.Now(), []byte(g))
	}
	rowErrs, err := tbl.ApplyBulk(ctx, keys, muts)
	if err != nil {
		return errors.Annotate(err, "writing rows").Err()
	}
	for i, err := range rowErrs {
		if err != nil {
			return errors.Annotate(err, "writing row %q", keys[i]).Err()
		}
	}

	fmt.Fprintf(w, "Getting a single greeting by row key:\n")
	row, err := tbl.ReadRow(ctx, keys[0], bigtable.RowFilter(bigtable.ColumnFilter(column)))
	if err != nil {
		return errors.Annotate(err, "reading row %q", keys[0]).Err()
	}
	printRow(w, row)

	fmt.Fprintf(w, "Reading all greeting rows:\n")
	err = tbl.ReadRows(ctx, bigtable.PrefixRange(column), func(row bigtable.Row) bool {
		printRow(w, row)
		return true
	}, bigtable.RowFilter(bigtable.ColumnFilter(column)))
	if err != nil {
		return errors.Annotate(err, "scanning rows").Err()
	}

	fmt.Fprintf(w, "Deleting the table\n")
	if err := admin.DeleteTable(ctx, table); err != nil {
		return errors.Annotate(err, "deleting table %q", table).Err()
	}
	return nil
}

func createTable(ctx context.Context, w io.Writer, admin *bigtable.AdminClient, table string) error {
	tables, err := admin.Tables(ctx)
	if err != nil {
		return errors.Annotate(err, "listing tables").Err()
	}
	if !slices.Contains(tables, table) {
		fmt.Fprintf(w, "Creating table %s\n", table)
		if err := admin.CreateTable(ctx, table); err != nil {
			return errors.Annotate(err, "creating table %q", table).Err()
		}
	}

	info, err := admin.TableInfo(ctx, table)
	if err != nil {
		return errors.Annotate(err, "reading info of table %q", table).Err()
	}
	if !slices.Contains(info.Families, columnFamily) {
		if err := admin.CreateColumnFamily(ctx, table, columnFamily); err != nil {
			return errors.Annotate(err, "creating column family %q", columnFamily).Err()
		}
	}
	return nil
}

func printRow(w io.Writer, row bigtable.Row) {
	for _, item := range row[columnFamily] {
		fmt.Fprintf(w, "\t%s = %s\n", item.Row, item.Value)
	}
}
