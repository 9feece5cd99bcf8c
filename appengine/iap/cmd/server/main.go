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

// Command server runs the IAP sample on App Engine.
//
// Set IAP_AUDIENCE to "/projects/<number>/apps/<project-id>".
package main

import (
	"go.chromium.org/luci/server"

	"github.com/luci/gcpsamples/appengine/iap"
	"github.com/luci/gcpsamples/common/gcpenv"
)

func main() {
	server.Main(nil, nil, func(srv *server.Server) error {
		aud, err := gcpenv.Getenv("IAP_AUDIENCE")
		if err != nil {
			return err
		}
		v := &iap.Validator{Audience: aud}
		v.InstallRoutes(srv.Routes)
		return nil
	})
}
