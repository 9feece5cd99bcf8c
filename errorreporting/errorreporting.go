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

// Package errorreporting shows how to send errors and handler panics to Error
// Reporting.
package errorreporting

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"runtime/debug"

	"cloud.google.com/go/errorreporting"
	"google.golang.org/api/option"

	"go.chromium.org/luci/common/errors"
	"go.chromium.org/luci/common/logging"
	"go.chromium.org/luci/server/router"
)

// Reporter sends errors of one service to Error Reporting.
type Reporter struct {
	Client *errorreporting.Client
}

// NewReporter creates a reporter for service at version.
func NewReporter(ctx context.Context, project, service, version string, opts ...option.ClientOption) (*Reporter, error) {
	client, err := errorreporting.NewClient(ctx, project, errorreporting.Config{
		ServiceName:    service,
		ServiceVersion: version,
		OnError: func(err error) {
			logging.Errorf(ctx, "Failed to report an error: %s", err)
		},
	}, opts...)
	if err != nil {
		return nil, errors.Annotate(err, "creating Error Reporting client").Err()
	}
	return &Reporter{Client: client}, nil
}

// Close flushes pending reports.
func (r *Reporter) Close() error {
	return r.Client.Close()
}

// ReportError reports err and waits until it is sent.
func (r *Reporter) ReportError(ctx context.Context, w io.Writer, reported error) error {
	if err := r.Client.ReportSync(ctx, errorreporting.Entry{Error: reported}); err != nil {
		return errors.Annotate(err, "reporting error").Err()
	}
	fmt.Fprintf(w, "Reported error: %s\n", reported)
	return nil
}

// Middleware reports panics of the downstream handlers and answers 500.
//
// Reports are sent in the background; the panic doesn't propagate.
// http.ErrAbortHandler is not an error and is re-panicked as is.
func (r *Reporter) Middleware(c *router.Context, next router.Handler) {
	defer func() {
		p := recover()
		switch {
		case p == nil:
			return
		case p == http.ErrAbortHandler:
			panic(p)
		}
		err, ok := p.(error)
		if !ok {
			err = errors.Reason("panic: %v", p).Err()
		}
		logging.Errorf(c.Request.Context(), "Handler panicked: %s", err)
		r.Client.Report(errorreporting.Entry{
			Error: err,
			Req:   c.Request,
			Stack: debug.Stack(),
		})
		http.Error(c.Writer, "Internal Server Error", http.StatusInternalServerError)
	}()
	next(c)
}
