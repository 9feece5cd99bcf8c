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

// Command server runs the visitor counter sample.
//
// With REDISHOST (and optionally REDISPORT) set, "/" counts visits in
// Memorystore. Otherwise it falls back to the per-instance counter, which is
// always served on "/instance" for comparison.
package main

import (
	"context"
	"net"
	"os"

	"go.chromium.org/luci/common/logging"
	"go.chromium.org/luci/server"
	"go.chromium.org/luci/server/router"

	"github.com/luci/gcpsamples/appengine/counter"
	"github.com/luci/gcpsamples/common/gcpenv"
)

func main() {
	server.Main(nil, nil, func(srv *server.Server) error {
		instance := &counter.InstanceCounter{}
		srv.Routes.GET("/instance", nil, instance.Handle)

		var root router.Handler = instance.Handle
		if host := os.Getenv("REDISHOST"); host != "" {
			addr := net.JoinHostPort(host, gcpenv.GetenvDefault("REDISPORT", "6379"))
			logging.Infof(srv.Context, "Counting visits in Redis at %s", addr)
			rc := &counter.RedisCounter{Pool: counter.NewPool(addr, 10)}
			srv.RegisterCleanup(func(context.Context) { rc.Pool.Close() })
			root = rc.Handle
		}
		srv.Routes.GET("/", nil, root)
		return nil
	})
}
