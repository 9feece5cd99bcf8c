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

// Package spanner shows the basic Cloud Spanner operations on a small music
// catalog: creating the schema, writing with mutations, querying with SQL and
// moving money between rows in a read-write transaction.
package spanner

import (
	"context"
	"fmt"
	"io"
	"strings"

	"cloud.google.com/go/spanner"
	database "cloud.google.com/go/spanner/admin/database/apiv1"
	"cloud.google.com/go/spanner/admin/database/apiv1/databasepb"
	"google.golang.org/api/iterator"

	"go.chromium.org/luci/common/errors"
)

// Schema is the DDL of the catalog.
var Schema = []string{
	`CREATE TABLE Singers (
		SingerId   INT64 NOT NULL,
		FirstName  STRING(1024),
		LastName   STRING(1024)
	) PRIMARY KEY (SingerId)`,
	`CREATE TABLE Albums (
		SingerId        INT64 NOT NULL,
		AlbumId         INT64 NOT NULL,
		AlbumTitle      STRING(MAX),
		MarketingBudget INT64
	) PRIMARY KEY (SingerId, AlbumId),
	INTERLEAVE IN PARENT Singers ON DELETE CASCADE`,
}

// ErrInsufficientBudget is returned by UpdateBudget when the source album
// can't cover the transfer.
var ErrInsufficientBudget = errors.New("insufficient marketing budget")

// Singer is a row of the Singers table.
type Singer struct {
	SingerID  int64
	FirstName string
	LastName  string
}

// Album is a row of the Albums table.
type Album struct {
	SingerID        int64
	AlbumID         int64
	Title           string
	MarketingBudget int64
}

// SampleSingers are written by InsertSingers.
var SampleSingers = []Singer{
	{1, "Marc", "Richards"},
	{2, "Catalina", "Smith"},
	{3, "Alice", "Trentor"},
	{4, "Lea", "Martin"},
	{5, "David", "Lomond"},
}

// SampleAlbums are written by InsertSingers.
var SampleAlbums = []Album{
	{1, 1, "Total Junk", 100000},
	{1, 2, "Go, Go, Go", 0},
	{2, 1, "Green", 0},
	{2, 2, "Forever Hold Your Peace", 500000},
	{2, 3, "Terrified", 0},
}

// CreateDatabase creates a database with Schema.
//
// db is "projects/P/instances/I/databases/D".
func CreateDatabase(ctx context.Context, w io.Writer, admin *database.DatabaseAdminClient, db string) error {
	instance, id, err := splitDatabasePath(db)
	if err != nil {
		return err
	}
	op, err := admin.CreateDatabase(ctx, &databasepb.CreateDatabaseRequest{
		Parent:          instance,
		CreateStatement: "CREATE DATABASE `" + id + "`",
		ExtraStatements: Schema,
	})
	if err != nil {
		return errors.Annotate(err, "creating %s", db).Err()
	}
	if _, err := op.Wait(ctx); err != nil {
		return errors.Annotate(err, "waiting for %s", db).Err()
	}
	fmt.Fprintf(w, "Created database %s\n", db)
	return nil
}

func splitDatabasePath(db string) (instance, id string, err error) {
	parts := strings.Split(db, "/")
	if len(parts) != 6 || parts[0] != "projects" || parts[2] != "instances" || parts[4] != "databases" {
		return "", "", errors.Reason("bad database path %q, want projects/P/instances/I/databases/D", db).Err()
	}
	return strings.Join(parts[:4], "/"), parts[5], nil
}

// InsertSingers writes SampleSingers and SampleAlbums.
func InsertSingers(ctx context.Context, w io.Writer, client *spanner.Client) error {
	var ms []*spanner.Mutation
	for _, s := range SampleSingers {
		ms = append(ms, spanner.InsertOrUpdate("Singers",
			[]string{"SingerId", "FirstName", "LastName"},
			[]any{s.SingerID, s.FirstName, s.LastName}))
	}
	for _, a := range SampleAlbums {
		ms = append(ms, spanner.InsertOrUpdate("Albums",
			[]string{"SingerId", "AlbumId", "AlbumTitle", "MarketingBudget"},
			[]any{a.SingerID, a.AlbumID, a.Title, a.MarketingBudget}))
	}
	if _, err := client.Apply(ctx, ms); err != nil {
		return errors.Annotate(err, "inserting singers").Err()
	}
	fmt.Fprintf(w, "Inserted %d singers and %d albums\n", len(SampleSingers), len(SampleAlbums))
	return nil
}

// QuerySingers prints all singers ordered by ID.
func QuerySingers(ctx context.Context, w io.Writer, client *spanner.Client) error {
	stmt := spanner.Statement{SQL: `SELECT SingerId, FirstName, LastName FROM Singers ORDER BY SingerId`}
	it := client.Single().Query(ctx, stmt)
	defer it.Stop()
	for {
		row, err := it.Next()
		if err == iterator.Done {
			return nil
		}
		if err != nil {
			return errors.Annotate(err, "querying singers").Err()
		}
		var s Singer
		var first, last spanner.NullString
		if err := row.Columns(&s.SingerID, &first, &last); err != nil {
			return errors.Annotate(err, "decoding singer").Err()
		}
		fmt.Fprintf(w, "%d %s %s\n", s.SingerID, first.StringVal, last.StringVal)
	}
}

// UpdateBudget moves amount from the marketing budget of one album to another
// atomically.
//
// Albums are keyed by spanner.Key{singerID, albumID}. The amount must be
// positive and the two albums must differ.
func UpdateBudget(ctx context.Context, w io.Writer, client *spanner.Client, from, to spanner.Key, amount int64) error {
	switch {
	case amount <= 0:
		return errors.Reason("amount must be positive, got %d", amount).Err()
	case from.String() == to.String():
		return errors.Reason("can't move budget from album %s to itself", from).Err()
	}

	budget := func(ctx context.Context, txn *spanner.ReadWriteTransaction, key spanner.Key) (int64, error) {
		row, err := txn.ReadRow(ctx, "Albums", key, []string{"MarketingBudget"})
		if err != nil {
			return 0, errors.Annotate(err, "reading album %s", key).Err()
		}
		var b spanner.NullInt64
		if err := row.Column(0, &b); err != nil {
			return 0, errors.Annotate(err, "decoding budget of %s", key).Err()
		}
		return b.Int64, nil
	}

	var fromBudget, toBudget int64
	_, err := client.ReadWriteTransaction(ctx, func(ctx context.Context, txn *spanner.ReadWriteTransaction) (err error) {
		if fromBudget, err = budget(ctx, txn, from); err != nil {
			return err
		}
		if fromBudget < amount {
			return errors.Annotate(ErrInsufficientBudget, "album %s has %d", from, fromBudget).Err()
		}
		if toBudget, err = budget(ctx, txn, to); err != nil {
			return err
		}
		fromBudget -= amount
		toBudget += amount
		cols := []string{"SingerId", "AlbumId", "MarketingBudget"}
		return txn.BufferWrite([]*spanner.Mutation{
			spanner.Update("Albums", cols, []any{from[0], from[1], fromBudget}),
			spanner.Update("Albums", cols, []any{to[0], to[1], toBudget}),
		})
	})
	if err != nil {
		return errors.Annotate(err, "moving budget").Err()
	}
	fmt.Fprintf(w, "Budgets updated: %s has %d, %s has %d\n", from, fromBudget, to, toBudget)
	return nil
}
