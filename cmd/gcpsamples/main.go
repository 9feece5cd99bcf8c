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

// Command gcpsamples runs the Google Cloud command line samples.
//
// Run "gcpsamples help" for the list of samples.
package main

import (
	"os"

	"github.com/maruel/subcommands"

	"go.chromium.org/luci/common/cli"

	"github.com/luci/gcpsamples/asset"
	"github.com/luci/gcpsamples/bigquery"
	"github.com/luci/gcpsamples/bigtable"
	"github.com/luci/gcpsamples/cdn/signurl"
	"github.com/luci/gcpsamples/cloudlogging"
	"github.com/luci/gcpsamples/cloudtasks"
	"github.com/luci/gcpsamples/common/samplecli"
	"github.com/luci/gcpsamples/datastore/tasks"
	"github.com/luci/gcpsamples/dialogflow"
	"github.com/luci/gcpsamples/errorreporting"
	"github.com/luci/gcpsamples/kms"
	"github.com/luci/gcpsamples/monitoring"
	"github.com/luci/gcpsamples/pubsub/subscriptions"
	"github.com/luci/gcpsamples/pubsub/topics"
	"github.com/luci/gcpsamples/secretmanager"
	"github.com/luci/gcpsamples/securitycenter"
	"github.com/luci/gcpsamples/spanner"
	"github.com/luci/gcpsamples/speech"
	"github.com/luci/gcpsamples/storage"
	"github.com/luci/gcpsamples/vision"
)

func application() *cli.Application {
	var cmds []*subcommands.Command
	// Keep in alphabetical order of the package.
	cmds = append(cmds, asset.Cmd())
	cmds = append(cmds, bigquery.Commands()...)
	cmds = append(cmds, bigtable.Cmd())
	cmds = append(cmds, signurl.Cmd())
	cmds = append(cmds, cloudlogging.Commands()...)
	cmds = append(cmds, cloudtasks.Cmd())
	cmds = append(cmds, tasks.Commands()...)
	cmds = append(cmds, dialogflow.Cmd())
	cmds = append(cmds, errorreporting.Cmd())
	cmds = append(cmds, kms.Commands()...)
	cmds = append(cmds, monitoring.Commands()...)
	cmds = append(cmds, topics.Commands()...)
	cmds = append(cmds, subscriptions.Commands()...)
	cmds = append(cmds, secretmanager.Commands()...)
	cmds = append(cmds, securitycenter.Commands()...)
	cmds = append(cmds, spanner.Commands()...)
	cmds = append(cmds, speech.Cmd())
	cmds = append(cmds, storage.Commands()...)
	cmds = append(cmds, vision.Commands()...)
	return samplecli.Application("gcpsamples", "Google Cloud samples.", cmds...)
}

func main() {
	os.Exit(subcommands.Run(application(), nil))
}
