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

// Package subscriptions shows how to create Cloud Pub/Sub subscriptions and
// receive messages from them.
package subscriptions

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"cloud.google.com/go/pubsub"

	"go.chromium.org/luci/common/clock"
	"go.chromium.org/luci/common/errors"
	"go.chromium.org/luci/common/logging"
)

// Create creates a pull subscription, or a push subscription if pushEndpoint
// is not empty.
func Create(ctx context.Context, w io.Writer, client *pubsub.Client, topicID, subID, pushEndpoint string) error {
	cfg := pubsub.SubscriptionConfig{
		Topic:       client.Topic(topicID),
		AckDeadline: 20 * time.Second,
	}
	if pushEndpoint != "" {
		cfg.PushConfig = pubsub.PushConfig{Endpoint: pushEndpoint}
	}
	sub, err := client.CreateSubscription(ctx, subID, cfg)
	if err != nil {
		return errors.Annotate(err, "creating subscription %q", subID).Err()
	}
	fmt.Fprintf(w, "Subscription %s created.\n", sub)
	return nil
}

// Pull receives up to maxMessages messages, acknowledging each, and returns how many
// were received.
//
// It gives up waiting after timeout. maxMessages must be at least 1.
func Pull(ctx context.Context, w io.Writer, client *pubsub.Client, subID string, maxMessages int, timeout time.Duration) (int, error) {
	if maxMessages < 1 {
		return 0, errors.Reason("maxMessages must be at least 1, got %d", maxMessages).Err()
	}
	sub := client.Subscription(subID)
	sub.ReceiveSettings.MaxOutstandingMessages = maxMessages

	ctx, cancel := clock.WithTimeout(ctx, timeout)
	defer cancel()

	var m sync.Mutex
	received := 0
	err := sub.Receive(ctx, func(_ context.Context, msg *pubsub.Message) {
		m.Lock()
		defer m.Unlock()
		if received >= maxMessages {
			msg.Nack()
			return
		}
		fmt.Fprintf(w, "Got message: %s\n", msg.Data)
		msg.Ack()
		received++
		if received == maxMessages {
			cancel()
		}
	})
	if err != nil {
		return received, errors.Annotate(err, "receiving from %q", subID).Err()
	}
	logging.Debugf(ctx, "Received %d messages from %q", received, subID)
	return received, nil
}

// Delete deletes a subscription.
func Delete(ctx context.Context, w io.Writer, client *pubsub.Client, subID string) error {
	if err := client.Subscription(subID).Delete(ctx); err != nil {
		return errors.Annotate(err, "deleting subscription %q", subID).Err()
	}
	fmt.Fprintf(w, "Subscription %s deleted.\n", subID)
	return nil
}
