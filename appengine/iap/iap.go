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

// Package iap verifies requests that went through Identity-Aware Proxy.
//
// IAP signs every request it forwards with an ES256 JWT passed in the
// x-goog-iap-jwt-assertion header. See
// https://cloud.google.com/iap/docs/signed-headers-howto.
package iap

import (
	"context"
	"fmt"
	"net/http"

	"google.golang.org/api/idtoken"

	"go.chromium.org/luci/common/errors"
	"go.chromium.org/luci/common/logging"
	"go.chromium.org/luci/server/router"
)

// AssertionHeader carries the IAP JWT.
const AssertionHeader = "x-goog-iap-jwt-assertion"

// Issuer is the "iss" claim of IAP JWTs.
const Issuer = "https://cloud.google.com/iap"

// AudienceForAppEngine is the JWT audience of an App Engine app behind IAP.
func AudienceForAppEngine(projectNumber, projectID string) string {
	return fmt.Sprintf("/projects/%s/apps/%s", projectNumber, projectID)
}

// AudienceForBackendService is the JWT audience of a GCE or GKE backend
// service behind IAP.
func AudienceForBackendService(projectNumber, backendServiceID string) string {
	return fmt.Sprintf("/projects/%s/global/backendServices/%s", projectNumber, backendServiceID)
}

// Identity is the user IAP authenticated.
type Identity struct {
	Email   string
	Subject string
}

// Validator checks IAP JWTs.
type Validator struct {
	// Audience is the expected "aud" claim, see AudienceForAppEngine and
	// AudienceForBackendService.
	Audience string

	// validate is idtoken.Validate, replaced in tests.
	validate func(ctx context.Context, token, audience string) (*idtoken.Payload, error)
}

// Validate verifies the JWT signature against Google's public IAP keys, and
// checks the audience and issuer.
func (v *Validator) Validate(ctx context.Context, assertion string) (*Identity, error) {
	if v.Audience == "" {
		return nil, errors.New("no audience configured")
	}
	validate := v.validate
	if validate == nil {
		validate = idtoken.Validate
	}
	payload, err := validate(ctx, assertion, v.Audience)
	if err != nil {
		return nil, errors.Annotate(err, "bad IAP JWT").Err()
	}
	if payload.Issuer != Issuer {
		return nil, errors.Reason("bad IAP JWT issuer %q", payload.Issuer).Err()
	}
	email, _ := payload.Claims["email"].(string)
	if email == "" {
		return nil, errors.New("IAP JWT has no email claim")
	}
	return &Identity{Email: email, Subject: payload.Subject}, nil
}

type identityKey struct{}

// CurrentIdentity returns the identity put in the context by Middleware.
func CurrentIdentity(ctx context.Context) *Identity {
	id, _ := ctx.Value(identityKey{}).(*Identity)
	return id
}

// Middleware rejects requests without a valid IAP JWT.
//
// A missing header results in HTTP 401, an invalid one in HTTP 403.
func (v *Validator) Middleware(c *router.Context, next router.Handler) {
	ctx := c.Request.Context()
	vals := c.Request.Header.Values(AssertionHeader)
	switch {
	case len(vals) == 0:
		http.Error(c.Writer, "Missing IAP assertion", http.StatusUnauthorized)
		return
	case len(vals) > 1:
		http.Error(c.Writer, "Multiple IAP assertions", http.StatusForbidden)
		return
	}
	id, err := v.Validate(ctx, vals[0])
	if err != nil {
		logging.Warningf(ctx, "Rejecting request: %s", err)
		http.Error(c.Writer, "Invalid IAP assertion", http.StatusForbidden)
		return
	}
	c.Request = c.Request.WithContext(context.WithValue(ctx, identityKey{}, id))
	next(c)
}

// InstallRoutes registers the sample handler.
func (v *Validator) InstallRoutes(r *router.Router) {
	r.GET("/", router.NewMiddlewareChain(v.Middleware), hello)
}

func hello(c *router.Context) {
	fmt.Fprintf(c.Writer, "Hello %s\n", CurrentIdentity(c.Request.Context()).Email)
}
