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

package speech

import (
	"context"
	"flag"

	speech "cloud.google.com/go/speech/apiv1"
	"github.com/maruel/subcommands"

	"github.com/luci/gcpsamples/common/samplecli"
)

func newClient(ctx context.Context, _ string) (*speech.Client, error) {
	return speech.NewClient(ctx)
}

// Cmd returns the transcription subcommand.
func Cmd() *subcommands.Command {
	return samplecli.Spec{
		UsageLine: "speech-transcribe [-rate HZ] [-lang L] <audio>",
		ShortDesc: "transcribes a LINEAR16 audio file",
		MinArgs:   1,
		MaxArgs:   1,
		Build: func(fs *flag.FlagSet) samplecli.Exec {
			rate := fs.Int("rate", 16000, "Sample rate in Hz.")
			lang := fs.String("lang", "en-US", "BCP-47 language code.")
			return samplecli.WithClient(newClient, func(ctx context.Context, r *samplecli.Run, c *speech.Client, args []string) error {
				return TranscribeFile(ctx, r.Stdout(), c, args[0], int32(*rate), *lang)
			})
		},
	}.Command()
}
