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

// Command server runs the Cloud Run hello world service.
//
// The NAME environment variable sets who is greeted.
package main

import (
	"os"

	"go.chromium.org/luci/common/logging"
	"go.chromium.org/luci/server"

	"github.com/luci/gcpsamples/run/hello"
)

func main() {
	server.Main(nil, nil, func(srv *server.Server) error {
		if region := hello.Region(srv.Context); region != "" {
			logging.Infof(srv.Context, "Serving from %s", region)
		}
		srv.Routes.GET("/", nil, hello.Handler(os.Getenv("NAME")))
		return nil
	})
}
