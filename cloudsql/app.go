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
	"database/sql"
	"fmt"
	"net/http"
	"time"

	"go.chromium.org/luci/common/errors"
	"go.chromium.org/luci/server/router"
	"go.chromium.org/luci/server/templates"
)

// recentVotes is how many votes the index page lists.
const recentVotes = 5

// App serves the poll.
type App struct {
	DB *sql.DB
}

var bundle = &templates.Bundle{
	Loader: templates.AssetsLoader(map[string]string{
		"pages/index.html": indexPage,
	}),
}

const indexPage = `<!doctype html>
<html>
  <head><title>Tabs VS Spaces</title></head>
  <body>
    <h3>{{.Leader}}</h3>
    <p>TABS: {{.Totals.Tabs}} SPACES: {{.Totals.Spaces}}</p>
    <form method="post" action="/">
      <button name="team" value="TABS">Vote for TABS</button>
      <button name="team" value="SPACES">Vote for SPACES</button>
    </form>
    <h5>Recent Votes</h5>
    <ul>
      {{range .Recent}}<li>{{.Candidate}} at {{.Cast.Format "2006-01-02T15:04:05Z07:00"}}</li>
      {{end}}
    </ul>
  </body>
</html>
`

// InstallRoutes registers the app handlers.
func (a *App) InstallRoutes(r *router.Router) {
	r.GET("/", router.NewMiddlewareChain(templates.WithTemplates(bundle)), a.index)
	r.POST("/", nil, a.vote)
}

func (a *App) index(c *router.Context) {
	ctx := c.Request.Context()
	totals, err := Tally(ctx, a.DB)
	if err != nil {
		internalError(c, err)
		return
	}
	recent, err := RecentVotes(ctx, a.DB, recentVotes)
	if err != nil {
		internalError(c, err)
		return
	}
	templates.MustRender(ctx, c.Writer, "pages/index.html", templates.Args{
		"Leader": totals.Leader(),
		"Totals": totals,
		"Recent": recent,
	})
}

func (a *App) vote(c *router.Context) {
	ctx := c.Request.Context()
	v, err := CastVote(ctx, a.DB, c.Request.FormValue("team"))
	switch {
	case errors.Is(err, ErrBadTeam):
		http.Error(c.Writer, err.Error(), http.StatusBadRequest)
		return
	case err != nil:
		internalError(c, err)
		return
	}
	fmt.Fprintf(c.Writer, "Vote successfully cast for %s at %s\n", v.Candidate, v.Cast.Format(time.RFC3339))
}

func internalError(c *router.Context, err error) {
	errors.Log(c.Request.Context(), err)
	http.Error(c.Writer, "Internal server error", http.StatusInternalServerError)
}
