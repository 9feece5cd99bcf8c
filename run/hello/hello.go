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

// Package hello is the Cloud Run hello world service.
package hello

import (
	"context"
	"fmt"
	"strings"

	"cloud.google.com/go/compute/metadata"

	"go.chromium.org/luci/server/router"
)

// Handler greets name, or the World when name is empty.
func Handler(name string) router.Handler {
	if name == "" {
		name = "World"
	}
	return func(c *router.Context) {
		fmt.Fprintf(c.Writer, "Hello %s!\n", name)
	}
}

// Region returns the region the service runs in, read from the metadata
// server. It returns "" when not running on Google Cloud.
func Region(ctx context.Context) string {
	if !metadata.OnGCE() {
		return ""
	}
	// Cloud Run answers with "projects/<number>/regions/<region>".
	v, err := metadata.GetWithContext(ctx, "instance/region")
	if err != nil {
		return ""
	}
	return v[strings.LastIndex(v, "/")+1:]
}
