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

// Package gcpenv resolves facts about the Google Cloud environment a sample
// runs in.
package gcpenv

import (
	"context"
	"os"

	"cloud.google.com/go/compute/metadata"

	"go.chromium.org/luci/common/errors"
	"go.chromium.org/luci/common/logging"
)

// ErrNoProject is returned by ProjectID when no project could be found.
var ErrNoProject = errors.New("no Cloud project: pass -project or set GOOGLE_CLOUD_PROJECT")

// projectEnvVars are consulted in order by ProjectID.
var projectEnvVars = []string{
	"GOOGLE_CLOUD_PROJECT",
	"GCLOUD_PROJECT",
	"PROJECT_ID",
}

// onGCE and metadataProjectID are replaced in tests.
var (
	onGCE             = metadata.OnGCE
	metadataProjectID = metadata.ProjectIDWithContext
)

// ProjectID returns the Cloud project to use.
//
// An explicit value wins. Otherwise the environment variables are checked and,
// when running on GCE-like infrastructure (App Engine, Cloud Run, Cloud
// Functions, GKE), the metadata server is asked.
func ProjectID(ctx context.Context, explicit string) (string, error) {
	if explicit != "" {
		return explicit, nil
	}
	for _, name := range projectEnvVars {
		if v := os.Getenv(name); v != "" {
			return v, nil
		}
	}
	if !onGCE() {
		return "", ErrNoProject
	}
	id, err := metadataProjectID(ctx)
	if err != nil {
		logging.Warningf(ctx, "Failed to get the project ID from the metadata server: %s", err)
		return "", ErrNoProject
	}
	return id, nil
}

// Getenv returns the value of a required environment variable.
func Getenv(name string) (string, error) {
	if v := os.Getenv(name); v != "" {
		return v, nil
	}
	return "", errors.Reason("environment variable %s must be set", name).Err()
}

// GetenvDefault returns the value of an environment variable or def if it is
// unset or empty.
func GetenvDefault(name, def string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	return def
}
