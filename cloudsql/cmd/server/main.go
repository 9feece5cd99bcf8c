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


// Command server runs the Cloud SQL poll.
//
// Environment:
//
//	INSTANCE_CONNECTION_NAME  "project:region:instance"
//	DB_USER, DB_PASS, DB_NAME database credentials and name
//	PRIVATE_IP                optional, "true" dials the private IP
package main

import (
	"context"

	"go.chromium.org/luci/common/logging"
	"go.chromium.org/luci/server"

	"github.com/luci/gcpsamples/cloudsql"
	"github.com/luci/gcpsamples/common/gcpenv"
)

func main() {
	server.Main(nil, nil, func(srv *server.Server) error {
		cfg := cloudsql.Config{PrivateIP: gcpenv.GetenvDefault("PRIVATE_IP", "") == "true"}
		for name, dst := range map[string]*string{
			"INSTANCE_CONNECTION_NAME": &cfg.Instance,
			"DB_USER":                  &cfg.User,
			"DB_PASS":                  &cfg.Password,
			"DB_NAME":                  &cfg.Database,
		} {
			v, err := gcpenv.Getenv(name)
			if err != nil {
				return err
			}
			*dst = v
		}

		db, cleanup, err := cloudsql.Connect(srv.Context, cfg)
		if err != nil {
			return err
		}
		srv.RegisterCleanup(func(ctx context.Context) {
			if err := cleanup(); err != nil {
				logging.Warningf(ctx, "Closing the database: %s", err)
			}
		})
		if err := cloudsql.Migrate(srv.Context, db); err != nil {
			return err
		}

		app := &cloudsql.App{DB: db}
		app.InstallRoutes(srv.Routes)
		return nil
	})
}
