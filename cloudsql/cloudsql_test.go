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


package cloudsql

import (
	"context"
	"database/sql"
	"net/http"
	"net/http/httptest"
	"net/url"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"go.chromium.org/luci/common/clock/testclock"
	"go.chromium.org/luci/common/errors"
	"go.chromium.org/luci/common/logging/gologger"
	"go.chromium.org/luci/common/testing/ftt"
	"go.chromium.org/luci/common/testing/truth/assert"
	"go.chromium.org/luci/common/testing/truth/should"
	"go.chromium.org/luci/server/router"
)

var testTime = time.Date(2024, time.October, 1, 12, 0, 0, 0, time.UTC)

const (
	insertStmt = "INSERT INTO votes (time_cast, candidate) VALUES (?, ?)"
	tallyStmt  = "SELECT candidate, COUNT(vote_id) FROM votes GROUP BY candidate"
	recentStmt = "SELECT candidate, time_cast FROM votes ORDER BY time_cast DESC LIMIT ?"
)

func exact(stmt string) string {
	return "^" + regexp.QuoteMeta(stmt) + "$"
}

func TestVotes(t *testing.T) {
	t.Parallel()

	ftt.Run("With mock database", t, func(t *ftt.Test) {
		ctx, _ := testclock.UseTime(context.Background(), testTime.Add(300*time.Millisecond))
		db, m, err := sqlmock.New()
		assert.Loosely(t, err, should.BeNil)
		t.Cleanup(func() { db.Close() })

		t.Run("Migrate", func(t *ftt.Test) {
			m.ExpectExec(`^CREATE TABLE IF NOT EXISTS votes \(`).WillReturnResult(sqlmock.NewResult(0, 0))
			assert.Loosely(t, Migrate(ctx, db), should.BeNil)
			assert.Loosely(t, m.ExpectationsWereMet(), should.BeNil)
		})

		t.Run("Migrate failure", func(t *ftt.Test) {
			m.ExpectExec(`^CREATE TABLE`).WillReturnError(errors.New("access denied"))
			assert.Loosely(t, Migrate(ctx, db), should.ErrLike("creating votes table"))
		})

		t.Run("CastVote", func(t *ftt.Test) {
			m.ExpectExec(exact(insertStmt)).WithArgs(testTime, Tabs).WillReturnResult(sqlmock.NewResult(1, 1))
			v, err := CastVote(ctx, db, Tabs)
			assert.Loosely(t, err, should.BeNil)
			assert.Loosely(t, v, should.Match(Vote{Candidate: Tabs, Cast: testTime}))
			assert.Loosely(t, m.ExpectationsWereMet(), should.BeNil)
		})

		t.Run("CastVote rejects other teams", func(t *ftt.Test) {
			for _, team := range []string{"", "tabs", "EMACS"} {
				_, err := CastVote(ctx, db, team)
				assert.Loosely(t, errors.Is(err, ErrBadTeam), should.BeTrue)
			}
			assert.Loosely(t, m.ExpectationsWereMet(), should.BeNil)
		})

		t.Run("Tally", func(t *ftt.Test) {
			m.ExpectQuery(exact(tallyStmt)).WillReturnRows(
				sqlmock.NewRows([]string{"candidate", "count"}).
					AddRow(Spaces, 3).
					AddRow(Tabs, 5))
			totals, err := Tally(ctx, db)
			assert.Loosely(t, err, should.BeNil)
			assert.Loosely(t, totals, should.Match(Totals{Tabs: 5, Spaces: 3}))
			assert.Loosely(t, m.ExpectationsWereMet(), should.BeNil)
		})

		t.Run("Tally failure", func(t *ftt.Test) {
			m.ExpectQuery(exact(tallyStmt)).WillReturnError(errors.New("gone"))
			_, err := Tally(ctx, db)
			assert.Loosely(t, err, should.ErrLike("counting votes"))
		})

		t.Run("RecentVotes", func(t *ftt.Test) {
			m.ExpectQuery(exact(recentStmt)).WithArgs(2).WillReturnRows(
				sqlmock.NewRows([]string{"candidate", "time_cast"}).
					AddRow(Spaces, testTime).
					AddRow(Tabs, testTime.Add(-time.Minute)))
			votes, err := RecentVotes(ctx, db, 2)
			assert.Loosely(t, err, should.BeNil)
			assert.Loosely(t, votes, should.Match([]Vote{
				{Candidate: Spaces, Cast: testTime},
				{Candidate: Tabs, Cast: testTime.Add(-time.Minute)},
			}))
			assert.Loosely(t, m.ExpectationsWereMet(), should.BeNil)
		})
	})

	ftt.Run("Leader", t, func(t *ftt.Test) {
		assert.Loosely(t, Totals{}.Leader(), should.Equal("TABS and SPACES are evenly matched!"))
		assert.Loosely(t, Totals{Tabs: 4, Spaces: 3}.Leader(), should.Equal("TABS are winning by 1 vote!"))
		assert.Loosely(t, Totals{Tabs: 1, Spaces: 4}.Leader(), should.Equal("SPACES are winning by 3 votes!"))
	})
}

func TestApp(t *testing.T) {
	t.Parallel()

	ftt.Run("With app", t, func(t *ftt.Test) {
		ctx := gologger.StdConfig.Use(context.Background())
		ctx, _ = testclock.UseTime(ctx, testTime)

		db, m, err := sqlmock.New()
		assert.Loosely(t, err, should.BeNil)
		t.Cleanup(func() { db.Close() })

		app := &App{DB: db}
		r := router.New()
		app.InstallRoutes(r)

		do := func(req *http.Request) *httptest.ResponseRecorder {
			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, req.WithContext(ctx))
			return rec
		}
		vote := func(team string) *httptest.ResponseRecorder {
			req := httptest.NewRequest("POST", "/", strings.NewReader(url.Values{"team": {team}}.Encode()))
			req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
			return do(req)
		}

		t.Run("index", func(t *ftt.Test) {
			m.ExpectQuery(exact(tallyStmt)).WillReturnRows(
				sqlmock.NewRows([]string{"candidate", "count"}).AddRow(Tabs, 2))
			m.ExpectQuery(exact(recentStmt)).WithArgs(recentVotes).WillReturnRows(
				sqlmock.NewRows([]string{"candidate", "time_cast"}).AddRow(Tabs, testTime))

			rec := do(httptest.NewRequest("GET", "/", nil))
			assert.Loosely(t, rec.Code, should.Equal(http.StatusOK))
			body := rec.Body.String()
			assert.Loosely(t, body, should.ContainSubstring("TABS are winning by 2 votes!"))
			assert.Loosely(t, body, should.ContainSubstring("TABS: 2 SPACES: 0"))
			assert.Loosely(t, body, should.ContainSubstring("<li>TABS at 2024-10-01T12:00:00Z</li>"))
			assert.Loosely(t, m.ExpectationsWereMet(), should.BeNil)
		})

		t.Run("index with a broken database", func(t *ftt.Test) {
			m.ExpectQuery(exact(tallyStmt)).WillReturnError(sql.ErrConnDone)
			rec := do(httptest.NewRequest("GET", "/", nil))
			assert.Loosely(t, rec.Code, should.Equal(http.StatusInternalServerError))
		})

		t.Run("vote", func(t *ftt.Test) {
			m.ExpectExec(exact(insertStmt)).WithArgs(testTime, Spaces).WillReturnResult(sqlmock.NewResult(7, 1))
			rec := vote(Spaces)
			assert.Loosely(t, rec.Code, should.Equal(http.StatusOK))
			assert.Loosely(t, rec.Body.String(), should.Equal("Vote successfully cast for SPACES at 2024-10-01T12:00:00Z\n"))
			assert.Loosely(t, m.ExpectationsWereMet(), should.BeNil)
		})

		t.Run("vote for nobody", func(t *ftt.Test) {
			rec := vote("EMACS")
			assert.Loosely(t, rec.Code, should.Equal(http.StatusBadRequest))
			assert.Loosely(t, m.ExpectationsWereMet(), should.BeNil)
		})

		t.Run("vote with a broken database", func(t *ftt.Test) {
			m.ExpectExec(exact(insertStmt)).WillReturnError(sql.ErrConnDone)
			assert.Loosely(t, vote(Tabs).Code, should.Equal(http.StatusInternalServerError))
		})

		t.Run("wrong method", func(t *ftt.Test) {
			rec := do(httptest.NewRequest("PUT", "/", nil))
			assert.Loosely(t, rec.Code, should.Equal(http.StatusMethodNotAllowed))
		})
	})
}
