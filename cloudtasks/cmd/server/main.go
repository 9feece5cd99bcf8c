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

// Command server handles tasks pushed by Cloud Tasks on /task_handler.
package main

import (
	"go.chromium.org/luci/server"

	"github.com/luci/gcpsamples/cloudtasks"
)

func main() {
	server.Main(nil, nil, func(srv *server.Server) error {
		cloudtasks.InstallRoutes(srv.Routes, nil)
		return nil
	})
}
