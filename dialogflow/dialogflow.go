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

// Package dialogflow sends text queries to a Dialogflow ES agent.
package dialogflow

import (
	"context"
	"fmt"
	"io"

	dialogflow "cloud.google.com/go/dialogflow/apiv2"
	"cloud.google.com/go/dialogflow/apiv2/dialogflowpb"

	"go.chromium.org/luci/common/errors"
)

// SessionPath returns the resource name of an agent session.
func SessionPath(project, sessionID string) string {
	return fmt.Sprintf("projects/%s/agent/sessions/%s", project, sessionID)
}

// DetectIntentText sends text to the agent of project and prints the intent
// it matched.
func DetectIntentText(ctx context.Context, w io.Writer, client *dialogflow.SessionsClient, project, sessionID, text, languageCode string) (*dialogflowpb.QueryResult, error) {
	resp, err := client.DetectIntent(ctx, &dialogflowpb.DetectIntentRequest{
		Session: SessionPath(project, sessionID),
		QueryInput: &dialogflowpb.QueryInput{
			Input: &dialogflowpb.QueryInput_Text{
				Text: &dialogflowpb.TextInput{Text: text, LanguageCode: languageCode},
			},
		},
	})
	if err != nil {
		return nil, errors.Annotate(err, "detecting intent").Err()
	}
	res := resp.GetQueryResult()
	fmt.Fprintf(w, "Query: %s\n", res.GetQueryText())
	fmt.Fprintf(w, "Detected intent: %s (confidence %.2f)\n", res.GetIntent().GetDisplayName(), res.GetIntentDetectionConfidence())
	fmt.Fprintf(w, "Fulfillment: %s\n", res.GetFulfillmentText())
	return res, nil
}
