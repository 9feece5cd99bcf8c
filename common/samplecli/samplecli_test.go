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

package samplecli

import (
	"bytes"
	"context"
	"flag"
	"fmt"
	"testing"

	"cloud.google.com/go/compute/metadata"
	"github.com/maruel/subcommands"

	"go.chromium.org/luci/common/errors"
	"go.chromium.org/luci/common/testing/ftt"
	"go.chromium.org/luci/common/testing/truth/assert"
	"go.chromium.org/luci/common/testing/truth/should"
)

func TestSpec(t *testing.T) {
	ftt.Run("With an app", t, func(t *ftt.Test) {
		t.Setenv("GOOGLE_CLOUD_PROJECT", "env-project")

		var out bytes.Buffer
		var fail error
		spec := Spec{
			UsageLine:    "echo [-upper] <word>",
			ShortDesc:    "echoes",
			MinArgs:      1,
			MaxArgs:      1,
			NeedsProject: true,
			Build: func(fs *flag.FlagSet) Exec {
				upper := fs.Bool("upper", false, "shout")
				return func(ctx context.Context, r *Run, args []string) error {
					if fail != nil {
						return fail
					}
					word := args[0]
					if *upper {
						word = word + "!"
					}
					_, err := fmt.Fprintf(&out, "%s %s", r.ProjectID, word)
					return err
				}
			},
		}
		app := Application("test", "test app", spec.Command())
		run := func(args ...string) int {
			return subcommands.Run(app, append([]string{"echo"}, args...))
		}

		t.Run("OK", func(t *ftt.Test) {
			assert.Loosely(t, run("hi"), should.Equal(ExitOK))
			assert.Loosely(t, out.String(), should.Equal("env-project hi"))
		})

		t.Run("flags", func(t *ftt.Test) {
			assert.Loosely(t, run("-project", "flag-project", "-upper", "hi"), should.Equal(ExitOK))
			assert.Loosely(t, out.String(), should.Equal("flag-project hi!"))
		})

		t.Run("wrong arg count", func(t *ftt.Test) {
			assert.Loosely(t, run(), should.Equal(ExitUsage))
			assert.Loosely(t, run("a", "b"), should.Equal(ExitUsage))
			assert.Loosely(t, out.Len(), should.BeZero)
		})

		t.Run("sample failure", func(t *ftt.Test) {
			fail = errors.New("boom")
			assert.Loosely(t, run("hi"), should.Equal(ExitError))
		})

		t.Run("usage failure", func(t *ftt.Test) {
			fail = errors.Annotate(ErrUsage, "bad word").Err()
			assert.Loosely(t, run("hi"), should.Equal(ExitUsage))
		})

		t.Run("no project", func(t *ftt.Test) {
			t.Setenv("GOOGLE_CLOUD_PROJECT", "")
			t.Setenv("GCLOUD_PROJECT", "")
			t.Setenv("PROJECT_ID", "")
			if metadata.OnGCE() {
				t.Skip("running on GCE, the metadata server knows the project")
			}
			assert.Loosely(t, run("hi"), should.Equal(ExitError))
		})
	})
}
