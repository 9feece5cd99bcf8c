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

// Command server runs the Pub/Sub sample on App Engine.
//
// Environment:
//
//	PUBSUB_TOPIC               topic /publish sends to
//	PUBSUB_VERIFICATION_TOKEN  token push requests must carry
//	PUBSUB_AUDIENCE            optional, enables authenticated push checks
package main

import (
	"context"
	"os"

	"cloud.google.com/go/pubsub"

	"go.chromium.org/luci/common/errors"
	"go.chromium.org/luci/server"

	gaepubsub "github.com/luci/gcpsamples/appengine/pubsub"
	"github.com/luci/gcpsamples/common/gcpenv"
)

func main() {
	server.Main(nil, nil, func(srv *server.Server) error {
		topicID, err := gcpenv.Getenv("PUBSUB_TOPIC")
		if err != nil {
			return err
		}
		token, err := gcpenv.Getenv("PUBSUB_VERIFICATION_TOKEN")
		if err != nil {
			return err
		}
		project, err := gcpenv.ProjectID(srv.Context, srv.Options.CloudProject)
		if err != nil {
			return err
		}

		client, err := pubsub.NewClient(srv.Context, project)
		if err != nil {
			return errors.Annotate(err, "creating Pub/Sub client").Err()
		}
		topic := client.Topic(topicID)
		srv.RegisterCleanup(func(context.Context) {
			topic.Stop()
			client.Close()
		})

		app := &gaepubsub.App{
			Publisher: &gaepubsub.TopicPublisher{Topic: topic},
			Token:     token,
			Audience:  os.Getenv("PUBSUB_AUDIENCE"),
		}
		app.InstallRoutes(srv.Routes)
		return nil
	})
}
