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

// Package hello contains Cloud Functions greeting their callers.
//
// HelloHTTP and HelloCORS are HTTP functions. HelloPubSub and HelloGCS are event functions
// triggered by Pub/Sub messages and Cloud Storage object changes.
package hello

import (
	"context"
	"encoding/json"
	"fmt"
	"html"
	"net/http"
	"time"

	"go.chromium.org/luci/common/logging"
	"go.chromium.org/luci/common/logging/gologger"
)

// HelloHTTP greets the "name" of a JSON body or query string.
func HelloHTTP(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Name string `json:"name"`
	}
	if r.Body != nil {
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			body.Name = ""
		}
	}
	name := body.Name
	if name == "" {
		name = r.URL.Query().Get("name")
	}
	if name == "" {
		name = "World"
	}
	fmt.Fprintf(w, "Hello, %s!", html.EscapeString(name))
}

// HelloCORS is HelloHTTP callable from any origin.
//
// Preflight requests are answered with 204 and allow POST with a JSON body
// for an hour.
func HelloCORS(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	if r.Method == http.MethodOptions {
		w.Header().Set("Access-Control-Allow-Methods", "POST")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		w.Header().Set("Access-Control-Max-Age", "3600")
		w.WriteHeader(http.StatusNoContent)
		return
	}
	HelloHTTP(w, r)
}

// PubSubMessage is the payload of a Pub/Sub event.
type PubSubMessage struct {
	Data []byte `json:"data"`
}

// HelloPubSub logs a greeting to the name carried by the message.
func HelloPubSub(ctx context.Context, m PubSubMessage) error {
	ctx = withLogger(ctx)
	name := string(m.Data)
	if name == "" {
		name = "World"
	}
	logging.Infof(ctx, "Hello, %s!", name)
	return nil
}

// GCSEvent is the payload of a Cloud Storage event.
type GCSEvent struct {
	Kind           string    `json:"kind"`
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Bucket         string    `json:"bucket"`
	Generation     string    `json:"generation"`
	Metageneration string    `json:"metageneration"`
	ContentType    string    `json:"contentType"`
	Size           string    `json:"size"`
	MD5Hash        string    `json:"md5Hash"`
	TimeCreated    time.Time `json:"timeCreated"`
	Updated        time.Time `json:"updated"`
}

// HelloGCS logs the metadata of the changed object.
func HelloGCS(ctx context.Context, e GCSEvent) error {
	ctx = withLogger(ctx)
	logging.Infof(ctx, "Bucket: %s", e.Bucket)
	logging.Infof(ctx, "File: %s", e.Name)
	logging.Infof(ctx, "Metageneration: %s", e.Metageneration)
	logging.Infof(ctx, "Created: %s", e.TimeCreated.Format(time.RFC3339))
	logging.Infof(ctx, "Updated: %s", e.Updated.Format(time.RFC3339))
	return nil
}

// withLogger installs a stderr logger unless the caller set one up.
func withLogger(ctx context.Context) context.Context {
	if logging.GetFactory(ctx) != nil {
		return ctx
	}
	return gologger.StdConfig.Use(ctx)
}
