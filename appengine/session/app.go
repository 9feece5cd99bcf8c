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

package session

import (
	"fmt"
	"net/http"
	"strconv"

	"go.chromium.org/luci/common/data/rand/mathrand"
	"go.chromium.org/luci/common/errors"
	"go.chromium.org/luci/server/router"
)

// CookieName is the cookie holding the session ID.
const CookieName = "sid"

var greetings = []string{
	"Hello World",
	"Hallo Welt",
	"Ciao Mondo",
	"Salut le Monde",
	"Hola Mundo",
}

// App counts page views per visitor.
//
// The greeting for a new visitor is drawn from the mathrand source in the
// request context.
type App struct {
	Store *Store
}

// InstallRoutes registers the app handlers.
func (a *App) InstallRoutes(r *router.Router, mw router.MiddlewareChain) {
	r.GET("/", mw, a.index)
	r.GET("/logout", mw, a.logout)
}

func (a *App) index(c *router.Context) {
	ctx := c.Request.Context()

	sid, vals, err := a.Store.Find(ctx, cookieValue(c.Request))
	if err != nil {
		internalError(c, err)
		return
	}

	if vals["greeting"] == "" {
		vals["greeting"] = greetings[mathrand.Intn(ctx, len(greetings))]
	}
	views, _ := strconv.Atoi(vals["views"])
	views++
	vals["views"] = strconv.Itoa(views)

	if sid, err = a.Store.Write(ctx, sid, vals); err != nil {
		internalError(c, err)
		return
	}
	setCookie(c.Writer, sid, 0)
	fmt.Fprintf(c.Writer, "%d views for %s\n", views, vals["greeting"])
}

func (a *App) logout(c *router.Context) {
	if _, err := a.Store.Delete(c.Request.Context(), cookieValue(c.Request)); err != nil {
		internalError(c, err)
		return
	}
	setCookie(c.Writer, "", -1)
	fmt.Fprintln(c.Writer, "Logged out")
}

func cookieValue(r *http.Request) string {
	if ck, err := r.Cookie(CookieName); err == nil {
		return ck.Value
	}
	return ""
}

func setCookie(w http.ResponseWriter, sid string, maxAge int) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    sid,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func internalError(c *router.Context, err error) {
	errors.Log(c.Request.Context(), err)
	http.Error(c.Writer, "Internal server error", http.StatusInternalServerError)
}
