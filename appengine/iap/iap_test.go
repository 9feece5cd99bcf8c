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

package iap

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"google.golang.org/api/idtoken"

	"go.chromium.org/luci/common/errors"
	"go.chromium.org/luci/common/logging/gologger"
	"go.chromium.org/luci/common/testing/ftt"
	"go.chromium.org/luci/common/testing/truth/assert"
	"go.chromium.org/luci/common/testing/truth/should"
	"go.chromium.org/luci/server/router"
)

func TestAudience(t *testing.T) {
	t.Parallel()

	ftt.Run("Audiences", t, func(t *ftt.Test) {
		assert.Loosely(t, AudienceForAppEngine("1234", "my-app"), should.Equal("/projects/1234/apps/my-app"))
		assert.Loosely(t, AudienceForBackendService("1234", "5678"),
			should.Equal("/projects/1234/global/backendServices/5678"))
	})
}

func TestValidator(t *testing.T) {
	t.Parallel()

	ftt.Run("With validator", t, func(t *ftt.Test) {
		ctx := gologger.StdConfig.Use(context.Background())

		payload := &idtoken.Payload{
			Issuer:  Issuer,
			Subject: "accounts.google.com:123",
			Claims:  map[string]any{"email": "someone@example.com"},
		}
		var gotAudience string
		v := &Validator{
			Audience: AudienceForAppEngine("1234", "my-app"),
			validate: func(ctx context.Context, token, audience string) (*idtoken.Payload, error) {
				gotAudience = audience
				if token != "good-token" {
					return nil, errors.New("signature mismatch")
				}
				return payload, nil
			},
		}

		t.Run("Validate", func(t *ftt.Test) {
			t.Run("OK", func(t *ftt.Test) {
				id, err := v.Validate(ctx, "good-token")
				assert.Loosely(t, err, should.BeNil)
				assert.Loosely(t, id, should.Match(&Identity{
					Email:   "someone@example.com",
					Subject: "accounts.google.com:123",
				}))
				assert.Loosely(t, gotAudience, should.Equal("/projects/1234/apps/my-app"))
			})

			t.Run("bad signature", func(t *ftt.Test) {
				_, err := v.Validate(ctx, "forged")
				assert.Loosely(t, err, should.ErrLike("signature mismatch"))
			})

			t.Run("wrong issuer", func(t *ftt.Test) {
				payload.Issuer = "https://accounts.google.com"
				_, err := v.Validate(ctx, "good-token")
				assert.Loosely(t, err, should.ErrLike("bad IAP JWT issuer"))
			})

			t.Run("no email", func(t *ftt.Test) {
				payload.Claims = map[string]any{}
				_, err := v.Validate(ctx, "good-token")
				assert.Loosely(t, err, should.ErrLike("no email claim"))
			})

			t.Run("no audience", func(t *ftt.Test) {
				v.Audience = ""
				_, err := v.Validate(ctx, "good-token")
				assert.Loosely(t, err, should.ErrLike("no audience"))
			})
		})

		t.Run("Handler", func(t *ftt.Test) {
			r := router.New()
			v.InstallRoutes(r)

			call := func(assertions ...string) *httptest.ResponseRecorder {
				req := httptest.NewRequest("GET", "/", nil).WithContext(ctx)
				for _, a := range assertions {
					req.Header.Add(AssertionHeader, a)
				}
				rec := httptest.NewRecorder()
				r.ServeHTTP(rec, req)
				return rec
			}

			t.Run("OK", func(t *ftt.Test) {
				rec := call("good-token")
				assert.Loosely(t, rec.Code, should.Equal(http.StatusOK))
				assert.Loosely(t, rec.Body.String(), should.Equal("Hello someone@example.com\n"))
			})

			t.Run("missing header", func(t *ftt.Test) {
				assert.Loosely(t, call().Code, should.Equal(http.StatusUnauthorized))
			})

			t.Run("invalid header", func(t *ftt.Test) {
				assert.Loosely(t, call("forged").Code, should.Equal(http.StatusForbidden))
			})

			t.Run("multiple headers", func(t *ftt.Test) {
				assert.Loosely(t, call("good-token", "good-token").Code, should.Equal(http.StatusForbidden))
			})
		})
	})
}
