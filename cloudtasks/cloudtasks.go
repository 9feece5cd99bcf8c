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

// Package cloudtasks shows how to enqueue Cloud Tasks and how to handle them.
package cloudtasks

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"cloud.google.com/go/cloudtasks/apiv2/cloudtaskspb"
	"github.com/googleapis/gax-go/v2"
	"google.golang.org/protobuf/types/known/timestamppb"

	"go.chromium.org/luci/common/clock"
	"go.chromium.org/luci/common/errors"
	"go.chromium.org/luci/common/logging"
	"go.chromium.org/luci/server/router"
)

// TaskCreator is the part of the Cloud Tasks client used by the samples.
type TaskCreator interface {
	CreateTask(ctx context.Context, req *cloudtaskspb.CreateTaskRequest, opts ...gax.CallOption) (*cloudtaskspb.Task, error)
}

// QueuePath returns the full resource name of a queue.
func QueuePath(project, location, queue string) string {
	return fmt.Sprintf("projects/%s/locations/%s/queues/%s", project, location, queue)
}

// CreateHTTPTask enqueues a POST of payload to url.
//
// A positive delay schedules the task that far in the future.
func CreateHTTPTask(ctx context.Context, w io.Writer, client TaskCreator, queuePath, url string, payload []byte, delay time.Duration) (*cloudtaskspb.Task, error) {
	task := &cloudtaskspb.Task{
		MessageType: &cloudtaskspb.Task_HttpRequest{
			HttpRequest: &cloudtaskspb.HttpRequest{
				HttpMethod: cloudtaskspb.HttpMethod_POST,
				Url:        url,
				Body:       payload,
			},
		},
	}
	return createTask(ctx, w, client, queuePath, task, delay)
}

// CreateAppEngineTask enqueues a POST of payload to relativeURI on the App
// Engine app of the queue's project.
func CreateAppEngineTask(ctx context.Context, w io.Writer, client TaskCreator, queuePath, relativeURI string, payload []byte, delay time.Duration) (*cloudtaskspb.Task, error) {
	task := &cloudtaskspb.Task{
		MessageType: &cloudtaskspb.Task_AppEngineHttpRequest{
			AppEngineHttpRequest: &cloudtaskspb.AppEngineHttpRequest{
				HttpMethod:  cloudtaskspb.HttpMethod_POST,
				RelativeUri: relativeURI,
				Body:        payload,
			},
		},
	}
	return createTask(ctx, w, client, queuePath, task, delay)
}

func createTask(ctx context.Context, w io.Writer, client TaskCreator, queuePath string, task *cloudtaskspb.Task, delay time.Duration) (*cloudtaskspb.Task, error) {
	if delay > 0 {
		task.ScheduleTime = timestamppb.New(clock.Now(ctx).Add(delay))
	}
	created, err := client.CreateTask(ctx, &cloudtaskspb.CreateTaskRequest{
		Parent: queuePath,
		Task:   task,
	})
	if err != nil {
		return nil, errors.Annotate(err, "creating task in %q", queuePath).Err()
	}
	fmt.Fprintf(w, "Created task %s\n", created.GetName())
	return created, nil
}

// Headers set by Cloud Tasks on task requests.
var taskHeaders = []string{
	"X-CloudTasks-QueueName",
	"X-CloudTasks-TaskName",
	"X-CloudTasks-TaskRetryCount",
	"X-AppEngine-QueueName",
	"X-AppEngine-TaskName",
	"X-AppEngine-TaskRetryCount",
}

// TaskHandler handles POST /task_handler.
func TaskHandler(c *router.Context) {
	ctx := c.Request.Context()
	for _, h := range taskHeaders {
		if v := c.Request.Header.Get(h); v != "" {
			logging.Infof(ctx, "%s: %s", h, v)
		}
	}
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		errors.Log(ctx, errors.Annotate(err, "reading task body").Err())
		http.Error(c.Writer, "Failed to read the task", http.StatusInternalServerError)
		return
	}
	logging.Infof(ctx, "Task payload: %q", body)
	fmt.Fprintf(c.Writer, "Printed task payload: %s", body)
}

// InstallRoutes registers the task handler.
func InstallRoutes(r *router.Router, mw router.MiddlewareChain) {
	r.POST("/task_handler", mw, TaskHandler)
}
