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

package dialogflow

import (
	"context"
	"flag"
	"strings"

	dialogflow "cloud.google.com/go/dialogflow/apiv2"
	"github.com/google/uuid"
	"github.com/maruel/subcommands"

	"github.com/luci/gcpsamples/common/samplecli"
)

func newClient(ctx context.Context, _ string) (*dialogflow.SessionsClient, error) {
	return dialogflow.NewSessionsClient(ctx)
}

// Cmd returns the subcommand querying an agent.
func Cmd() *subcommands.Command {
	return samplecli.Spec{
		UsageLine:    "dialogflow-detect-intent [-session ID] [-lang L] <text>...",
		ShortDesc:    "sends a text query to the project's Dialogflow agent",
		MinArgs:      1,
		MaxArgs:      -1,
		NeedsProject: true,
		Build: func(fs *flag.FlagSet) samplecli.Exec {
			session := fs.String("session", "", "Session ID. A random one by default.")
			lang := fs.String("lang", "en-US", "Language of the query.")
			return samplecli.WithClient(newClient, func(ctx context.Context, r *samplecli.Run, c *dialogflow.SessionsClient, args []string) error {
				sid := *session
				if sid == "" {
					sid = uuid.NewString()
				}
				_, err := DetectIntentText(ctx, r.Stdout(), c, r.ProjectID, sid, strings.Join(args, " "), *lang)
				return err
			})
		},
	}.Command()
}
