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

package errorreporting

import (
	"context"
	"strings"

	"github.com/maruel/subcommands"

	"go.chromium.org/luci/common/errors"

	"github.com/luci/gcpsamples/common/samplecli"
)

func newReporter(ctx context.Context, project string) (*Reporter, error) {
	return NewReporter(ctx, project, "gcpsamples", "")
}

// Cmd returns the subcommand reporting an error.
func Cmd() *subcommands.Command {
	return samplecli.Spec{
		UsageLine:    "errorreporting-report <message>...",
		ShortDesc:    "reports an error to Error Reporting",
		MinArgs:      1,
		MaxArgs:      -1,
		NeedsProject: true,
		Exec: samplecli.WithClient(newReporter, func(ctx context.Context, r *samplecli.Run, rep *Reporter, args []string) error {
			return rep.ReportError(ctx, r.Stdout(), errors.New(strings.Join(args, " ")))
		}),
	}.Command()
}
