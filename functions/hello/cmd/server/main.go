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

// Command server serves the HTTP functions locally.
package main

import (
	"go.chromium.org/luci/server"
	"go.chromium.org/luci/server/router"

	"github.com/luci/gcpsamples/functions/hello"
)

func main() {
	server.Main(nil, nil, func(srv *server.Server) error {
		h := func(c *router.Context) { hello.HelloHTTP(c.Writer, c.Request) }
		srv.Routes.GET("/", nil, h)
		srv.Routes.POST("/", nil, h)
		cors := func(c *router.Context) { hello.HelloCORS(c.Writer, c.Request) }
		srv.Routes.OPTIONS("/cors", nil, cors)
		srv.Routes.POST("/cors", nil, cors)
		return nil
	})
}
