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

// Package cloudlogging shows how to write log entries to Cloud Logging and
// read them back.
package cloudlogging

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"cloud.google.com/go/logging"
	"cloud.google.com/go/logging/logadmin"
	"google.golang.org/api/iterator"

	"go.chromium.org/luci/common/errors"
)

// LogPath returns the full resource name of a log.
func LogPath(project, logName string) string {
	return fmt.Sprintf("projects/%s/logs/%s", project, logName)
}

// WriteEntry writes a text entry synchronously.
//
// Unknown severity names are written as DEFAULT.
func WriteEntry(ctx context.Context, client *logging.Client, logName, text, severity string) error {
	err := client.Logger(logName).LogSync(ctx, logging.Entry{
		Payload:  text,
		Severity: logging.ParseSeverity(severity),
	})
	return errors.Annotate(err, "writing to log %q", logName).Err()
}

// ListEntries prints up to limit of the newest entries of a log.
func ListEntries(ctx context.Context, w io.Writer, client *logadmin.Client, project, logName string, limit int) error {
	filter := fmt.Sprintf("logName = %q", LogPath(project, logName))
	it := client.Entries(ctx, logadmin.Filter(filter), logadmin.NewestFirst())
	for i := 0; i < limit; i++ {
		e, err := it.Next()
		if err == iterator.Done {
			return nil
		}
		if err != nil {
			return errors.Annotate(err, "listing entries of %q", logName).Err()
		}
		fmt.Fprintf(w, "%s %s %v\n", e.Timestamp.UTC().Format(time.RFC3339), strings.ToUpper(e.Severity.String()), e.Payload)
	}
	return nil
}
