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

// Package pubsub is an App Engine app that publishes Cloud Pub/Sub messages
// and receives them back through a push subscription.
package pubsub

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"cloud.google.com/go/pubsub"
	"google.golang.org/api/idtoken"

	"go.chromium.org/luci/common/errors"
	"go.chromium.org/luci/common/logging"
	"go.chromium.org/luci/server/router"
	"go.chromium.org/luci/server/templates"
)

// maxMessages is how many received messages an instance remembers.
const maxMessages = 10

// maxPushBody limits the size of a push request body.
const maxPushBody = 1 << 20

// Publisher publishes a message and returns its server-assigned ID.
type Publisher interface {
	Publish(ctx context.Context, data []byte) (string, error)
}

// TopicPublisher publishes to a Cloud Pub/Sub topic.
type TopicPublisher struct {
	Topic *pubsub.Topic
}

// Publish implements Publisher.
func (p *TopicPublisher) Publish(ctx context.Context, data []byte) (string, error) {
	id, err := p.Topic.Publish(ctx, &pubsub.Message{Data: data}).Get(ctx)
	if err != nil {
		return "", errors.Annotate(err, "publishing to %s", p.Topic).Err()
	}
	return id, nil
}

// App holds the handlers of the sample.
type App struct {
	// Publisher sends messages submitted through /publish.
	Publisher Publisher
	// Token must match the "token" query parameter of push requests.
	Token string
	// Audience, if set, enables validation of the OIDC token Pub/Sub attaches
	// to authenticated push requests.
	Audience string

	// validate is idtoken.Validate, replaced in tests.
	validate func(ctx context.Context, token, audience string) (*idtoken.Payload, error)

	m        sync.Mutex
	messages []string
}

// pushRequest is the JSON body of a wrapped push subscription request.
//
// See https://cloud.google.com/pubsub/docs/push.
type pushRequest struct {
	Message struct {
		Attributes  map[string]string `json:"attributes,omitempty"`
		Data        []byte            `json:"data"`
		MessageID   string            `json:"message_id"`
		PublishTime time.Time         `json:"publish_time"`
	} `json:"message"`
	Subscription string `json:"subscription"`
}

var bundle = &templates.Bundle{
	Loader: templates.AssetsLoader(map[string]string{
		"pages/index.html": indexPage,
	}),
}

const indexPage = `<!doctype html>
<html>
  <head><title>Pub/Sub</title></head>
  <body>
    <div>
      <p>Messages received by this instance:</p>
      <ul>
        {{range .Messages}}<li>{{.}}</li>
        {{end}}
      </ul>
      <p><small>Note: because your application is likely running multiple instances, each instance will have a different list of messages.</small></p>
    </div>
    <form method="post" action="/publish">
      <textarea name="payload" placeholder="Enter message here"></textarea>
      <input type="submit">
    </form>
  </body>
</html>
`

// InstallRoutes registers the app handlers.
func (a *App) InstallRoutes(r *router.Router) {
	r.GET("/", router.NewMiddlewareChain(templates.WithTemplates(bundle)), a.index)
	r.POST("/publish", nil, a.publish)
	r.POST("/pubsub/push", nil, a.push)
}

// Messages returns the payloads received by this instance, oldest first.
func (a *App) Messages() []string {
	a.m.Lock()
	defer a.m.Unlock()
	return append([]string(nil), a.messages...)
}

func (a *App) remember(msg string) {
	a.m.Lock()
	defer a.m.Unlock()
	a.messages = append(a.messages, msg)
	if extra := len(a.messages) - maxMessages; extra > 0 {
		a.messages = append([]string(nil), a.messages[extra:]...)
	}
}

func (a *App) index(c *router.Context) {
	templates.MustRender(c.Request.Context(), c.Writer, "pages/index.html", templates.Args{
		"Messages": a.Messages(),
	})
}

func (a *App) publish(c *router.Context) {
	ctx := c.Request.Context()
	payload := c.Request.FormValue("payload")
	if payload == "" {
		http.Error(c.Writer, "Missing payload", http.StatusBadRequest)
		return
	}
	id, err := a.Publisher.Publish(ctx, []byte(payload))
	if err != nil {
		errors.Log(ctx, err)
		http.Error(c.Writer, "Failed to publish", http.StatusInternalServerError)
		return
	}
	fmt.Fprintf(c.Writer, "Published message ID %s\n", id)
}

func (a *App) push(c *router.Context) {
	ctx := c.Request.Context()

	if c.Request.URL.Query().Get("token") != a.Token {
		http.Error(c.Writer, "Invalid request", http.StatusBadRequest)
		return
	}
	if a.Audience != "" {
		if status, err := a.checkPushAuth(ctx, c.Request); err != nil {
			logging.Warningf(ctx, "Rejecting push: %s", err)
			http.Error(c.Writer, http.StatusText(status), status)
			return
		}
	}

	req, err := readPushRequest(c.Request)
	if err != nil {
		logging.Warningf(ctx, "Bad push body: %s", err)
		http.Error(c.Writer, "Could not decode body", http.StatusBadRequest)
		return
	}

	logging.Infof(ctx, "Received message %q from %q", req.Message.MessageID, req.Subscription)
	a.remember(string(req.Message.Data))
	c.Writer.Write([]byte("OK"))
}

// readPushRequest decodes the body of a wrapped push request.
func readPushRequest(r *http.Request) (*pushRequest, error) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxPushBody))
	if err != nil {
		return nil, errors.Annotate(err, "reading request body").Err()
	}
	req := &pushRequest{}
	if err := json.Unmarshal(body, req); err != nil {
		return nil, errors.Annotate(err, "bad push request body").Err()
	}
	switch {
	case req.Subscription == "":
		return nil, errors.Reason("missing field 'subscription'; is the subscription using wrapped messages?").Err()
	case req.Message.MessageID == "":
		return nil, errors.Reason("missing field 'message.message_id'").Err()
	}
	return req, nil
}

// checkPushAuth validates the bearer token of an authenticated push request.
//
// Returns the HTTP status to reply with on failure.
func (a *App) checkPushAuth(ctx context.Context, r *http.Request) (int, error) {
	token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
	if !ok || token == "" {
		return http.StatusUnauthorized, errors.New("no bearer token")
	}
	validate := a.validate
	if validate == nil {
		validate = idtoken.Validate
	}
	payload, err := validate(ctx, token, a.Audience)
	if err != nil {
		return http.StatusForbidden, errors.Annotate(err, "bad push token").Err()
	}
	logging.Debugf(ctx, "Push token issued to %v", payload.Claims["email"])
	return 0, nil
}
