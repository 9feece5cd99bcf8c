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

// Package topics shows how to manage and publish to Cloud Pub/Sub topics.
package topics

import (
	"context"
	"fmt"
	"io"

	"cloud.google.com/go/pubsub"
	"golang.org/x/sync/errgroup"
	"google.golang.org/api/iterator"

	"go.chromium.org/luci/common/errors"
)

// Create creates a topic.
func Create(ctx context.Context, w io.Writer, client *pubsub.Client, topicID string) error {
	t, err := client.CreateTopic(ctx, topicID)
	if err != nil {
		return errors.Annotate(err, "creating topic %q", topicID).Err()
	}
	fmt.Fprintf(w, "Topic %s created.\n", t)
	return nil
}

// List prints the names of all topics in the project.
func List(ctx context.Context, w io.Writer, client *pubsub.Client) error {
	it := client.Topics(ctx)
	for {
		t, err := it.Next()
		if err == iterator.Done {
			return nil
		}
		if err != nil {
			return errors.Annotate(err, "listing topics").Err()
		}
		fmt.Fprintln(w, t)
	}
}

// Publish publishes a single message and waits for the server to accept it.
func Publish(ctx context.Context, w io.Writer, client *pubsub.Client, topicID, msg string) error {
	t := client.Topic(topicID)
	defer t.Stop()

	id, err := t.Publish(ctx, &pubsub.Message{Data: []byte(msg)}).Get(ctx)
	if err != nil {
		return errors.Annotate(err, "publishing to %q", topicID).Err()
	}
	fmt.Fprintf(w, "Message %s published.\n", id)
	return nil
}

// PublishMany publishes count copies of msg, suffixed with their sequence
// number, letting the client batch them, and waits for all of them.
func PublishMany(ctx context.Context, w io.Writer, client *pubsub.Client, topicID, msg string, count int) error {
	if count < 1 {
		return errors.Reason("count must be at least 1, got %d", count).Err()
	}

	t := client.Topic(topicID)
	defer t.Stop()

	results := make([]*pubsub.PublishResult, count)
	for i := range results {
		results[i] = t.Publish(ctx, &pubsub.Message{
			Data: []byte(fmt.Sprintf("%s #%d", msg, i)),
		})
	}

	ids := make([]string, count)
	eg, ectx := errgroup.WithContext(ctx)
	for i, res := range results {
		eg.Go(func() error {
			id, err := res.Get(ectx)
			if err != nil {
				return errors.Annotate(err, "publishing message #%d", i).Err()
			}
			ids[i] = id
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return err
	}
	for i, id := range ids {
		fmt.Fprintf(w, "Message #%d published as %s.\n", i, id)
	}
	return nil
}

// Delete deletes a topic.
func Delete(ctx context.Context, w io.Writer, client *pubsub.Client, topicID string) error {
	if err := client.Topic(topicID).Delete(ctx); err != nil {
		return errors.Annotate(err, "deleting topic %q", topicID).Err()
	}
	fmt.Fprintf(w, "Topic %s deleted.\n", topicID)
	return nil
}
