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

// Package speech transcribes short audio files with Cloud Speech-to-Text.
package speech

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	speech "cloud.google.com/go/speech/apiv1"
	"cloud.google.com/go/speech/apiv1/speechpb"

	"go.chromium.org/luci/common/errors"
)

// TranscribeFile prints the transcript of a LINEAR16 audio file, local or
// gs://, shorter than a minute.
func TranscribeFile(ctx context.Context, w io.Writer, client *speech.Client, path string, sampleRate int32, language string) error {
	audio := &speechpb.RecognitionAudio{}
	if strings.HasPrefix(path, "gs://") {
		audio.AudioSource = &speechpb.RecognitionAudio_Uri{Uri: path}
	} else {
		blob, err := os.ReadFile(path)
		if err != nil {
			return errors.Annotate(err, "reading audio").Err()
		}
		audio.AudioSource = &speechpb.RecognitionAudio_Content{Content: blob}
	}

	resp, err := client.Recognize(ctx, &speechpb.RecognizeRequest{
		Config: &speechpb.RecognitionConfig{
			Encoding:        speechpb.RecognitionConfig_LINEAR16,
			SampleRateHertz: sampleRate,
			LanguageCode:    language,
		},
		Audio: audio,
	})
	if err != nil {
		return errors.Annotate(err, "recognizing %s", path).Err()
	}
	if len(resp.Results) == 0 {
		fmt.Fprintln(w, "No speech recognized.")
		return nil
	}
	for _, res := range resp.Results {
		if len(res.Alternatives) == 0 {
			continue
		}
		best := res.Alternatives[0]
		fmt.Fprintf(w, "Transcript: %s (confidence %.2f)\n", best.Transcript, best.Confidence)
	}
	return nil
}
