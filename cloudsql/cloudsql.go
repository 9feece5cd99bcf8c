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


// Package cloudsql runs a "tabs versus spaces" poll on Cloud SQL for MySQL.
//
// Connections go through the Cloud SQL Go connector, so the database needs
// neither authorized networks nor the Cloud SQL Auth Proxy.
package cloudsql

import (
	"context"
	"database/sql"
	"fmt"
	"net"
	"time"

	"cloud.google.com/go/cloudsqlconn"
	"github.com/go-sql-driver/mysql"

	"go.chromium.org/luci/common/clock"
	"go.chromium.org/luci/common/errors"
)

// Candidates of the poll.
const (
	Tabs   = "TABS"
	Spaces = "SPACES"
)

// ErrBadTeam is returned by CastVote for anything but Tabs or Spaces.
var ErrBadTeam = errors.New(`team must be "TABS" or "SPACES"`)

// Config describes how to reach the database.
type Config struct {
	// Instance is the instance connection name, "project:region:instance".
	Instance string
	User     string
	Password string
	Database string
	// PrivateIP dials the instance over its private IP.
	PrivateIP bool
}

// dialerNetwork is the mysql driver network name served by the connector.
const dialerNetwork = "cloudsqlconn"

// Connect opens a connection pool to the database.
//
// The returned cleanup closes the pool and the connector.
func Connect(ctx context.Context, cfg Config) (db *sql.DB, cleanup func() error, err error) {
	d, err := cloudsqlconn.NewDialer(ctx)
	if err != nil {
		return nil, nil, errors.Annotate(err, "creating Cloud SQL dialer").Err()
	}
	var opts []cloudsqlconn.DialOption
	if cfg.PrivateIP {
		opts = append(opts, cloudsqlconn.WithPrivateIP())
	}
	mysql.RegisterDialContext(dialerNetwork, func(ctx context.Context, _ string) (net.Conn, error) {
		return d.Dial(ctx, cfg.Instance, opts...)
	})

	mc := mysql.NewConfig()
	mc.User = cfg.User
	mc.Passwd = cfg.Password
	mc.DBName = cfg.Database
	mc.Net = dialerNetwork
	mc.Addr = cfg.Instance
	mc.ParseTime = true
	conn, err := mysql.NewConnector(mc)
	if err != nil {
		d.Close()
		return nil, nil, errors.Annotate(err, "configuring MySQL connector").Err()
	}
	db = sql.OpenDB(conn)
	return db, func() error {
		err := db.Close()
		d.Close()
		return err
	}, nil
}

const createVotes = `CREATE TABLE IF NOT EXISTS votes (
	vote_id SERIAL NOT NULL,
	time_cast TIMESTAMP NOT NULL,
	candidate CHAR(6) NOT NULL,
	PRIMARY KEY (vote_id)
)`

// Migrate creates the votes table if needed.
func Migrate(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, createVotes); err != nil {
		return errors.Annotate(err, "creating votes table").Err()
	}
	return nil
}

// Vote is one row of the votes table.
type Vote struct {
	Candidate string
	Cast      time.Time
}

// CastVote records a vote for team, cast now.
func CastVote(ctx context.Context, db *sql.DB, team string) (Vote, error) {
	if team != Tabs && team != Spaces {
		return Vote{}, errors.Annotate(ErrBadTeam, "got %q", team).Err()
	}
	v := Vote{Candidate: team, Cast: clock.Now(ctx).UTC().Truncate(time.Second)}
	if _, err := db.ExecContext(ctx, "INSERT INTO votes (time_cast, candidate) VALUES (?, ?)", v.Cast, v.Candidate); err != nil {
		return Vote{}, errors.Annotate(err, "saving vote").Err()
	}
	return v, nil
}

// Totals counts votes per candidate.
type Totals struct {
	Tabs   int64
	Spaces int64
}

// Leader describes who is ahead.
func (t Totals) Leader() string {
	diff := t.Tabs - t.Spaces
	winner := Tabs
	if diff < 0 {
		diff, winner = -diff, Spaces
	}
	switch diff {
	case 0:
		return "TABS and SPACES are evenly matched!"
	case 1:
		return winner + " are winning by 1 vote!"
	default:
		return fmt.Sprintf("%s are winning by %d votes!", winner, diff)
	}
}

// Tally counts the votes.
func Tally(ctx context.Context, db *sql.DB) (Totals, error) {
	rows, err := db.QueryContext(ctx, "SELECT candidate, COUNT(vote_id) FROM votes GROUP BY candidate")
	if err != nil {
		return Totals{}, errors.Annotate(err, "counting votes").Err()
	}
	defer rows.Close()

	var t Totals
	for rows.Next() {
		var candidate string
		var n int64
		if err := rows.Scan(&candidate, &n); err != nil {
			return Totals{}, errors.Annotate(err, "reading vote counts").Err()
		}
		switch candidate {
		case Tabs:
			t.Tabs = n
		case Spaces:
			t.Spaces = n
		}
	}
	if err := rows.Err(); err != nil {
		return Totals{}, errors.Annotate(err, "reading vote counts").Err()
	}
	return t, nil
}

// RecentVotes returns up to limit latest votes, newest first.
func RecentVotes(ctx context.Context, db *sql.DB, limit int) ([]Vote, error) {
	rows, err := db.QueryContext(ctx, "SELECT candidate, time_cast FROM votes ORDER BY time_cast DESC LIMIT ?", limit)
	if err != nil {
		return nil, errors.Annotate(err, "querying recent votes").Err()
	}
	defer rows.Close()

	var votes []Vote
	for rows.Next() {
		var v Vote
		if err := rows.Scan(&v.Candidate, &v.Cast); err != nil {
			return nil, errors.Annotate(err, "reading vote").Err()
		}
		votes = append(votes, v)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Annotate(err, "reading votes").Err()
	}
	return votes, nil
}
