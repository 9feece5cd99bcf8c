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

package hello

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"go.chromium.org/luci/common/testing/ftt"
	"go.chromium.org/luci/common/testing/truth/assert"
	"go.chromium.org/luci/common/testing/truth/should"
	"go.chromium.org/luci/server/router"
)

func TestHandler(t *testing.T) {
	t.Parallel()

	ftt.Run("Handler", t, func(t *ftt.Test) {
		get := func(name string) *httptest.ResponseRecorder {
			r := router.New()
			r.GET("/", nil, Handler(name))
			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, httptest.NewRequest("GET", "/", nil))
			return rec
		}

		t.Run("Named", func(t *ftt.Test) {
			rec := get("Gopher")
			assert.Loosely(t, rec.Code, should.Equal(http.StatusOK))
			assert.Loosely(t, rec.Body.String(), should.Equal("Hello Gopher!\n"))
		})

		t.Run("Default", func(t *ftt.Test) {
			assert.Loosely(t, get("").Body.String(), should.Equal("Hello World!\n"))
		})
	})
}
