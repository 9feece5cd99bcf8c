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

package topics

import (
	"context"
	"strings"
	"testing"

	"cloud.google.com/go/pubsub"
	"cloud.google.com/go/pubsub/pstest"
	"google.golang.org/api/option"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	"go.chromium.org/luci/common/testing/ftt"
	"go.chromium.org/luci/common/testing/truth/assert"
	"go.chromium.org/luci/common/testing/truth/should"
)

func TestTopics(t *testing.T) {
	t.Parallel()

	ftt.Run("With fake Pub/Sub", t, func(t *ftt.Test) {
		ctx := context.Background()

		srv := pstest.NewServer()
		t.Cleanup(func() { srv.Close() })
		conn, err := grpc.NewClient(srv.Addr, grpc.WithTransportCredentials(insecure.NewCredentials()))
		assert.Loosely(t, err, should.BeNil)
		client, err := pubsub.NewClient(ctx, "myproject", option.WithGRPCConn(conn))
		assert.Loosely(t, err, should.BeNil)
		t.Cleanup(func() { client.Close() })

		var out strings.Builder

		t.Run("Create and list", func(t *ftt.Test) {
			assert.Loosely(t, Create(ctx, &out, client, "t1"), should.BeNil)
			assert.Loosely(t, Create(ctx, &out, client, "t2"), should.BeNil)
			assert.Loosely(t, out.String(), should.Equal(
				"Topic projects/myproject/topics/t1 created.\n"+
					"Topic projects/myproject/topics/t2 created.\n"))

			out.Reset()
			assert.Loosely(t, List(ctx, &out, client), should.BeNil)
			assert.Loosely(t, out.String(), should.ContainSubstring("projects/myproject/topics/t1\n"))
			assert.Loosely(t, out.String(), should.ContainSubstring("projects/myproject/topics/t2\n"))
		})

		t.Run("Create twice", func(t *ftt.Test) {
			assert.Loosely(t, Create(ctx, &out, client, "t1"), should.BeNil)
			assert.Loosely(t, Create(ctx, &out, client, "t1"), should.ErrLike(`creating topic "t1"`))
		})

		t.Run("Publish", func(t *ftt.Test) {
			assert.Loosely(t, Create(ctx, &out, client, "t1"), should.BeNil)
			out.Reset()

			assert.Loosely(t, Publish(ctx, &out, client, "t1", "hello"), should.BeNil)
			assert.Loosely(t, out.String(), should.MatchRegexp(`^Message \S+ published\.\n$`))

			msgs := srv.Messages()
			assert.Loosely(t, msgs, should.HaveLength(1))
			assert.Loosely(t, string(msgs[0].Data), should.Equal("hello"))
		})

		t.Run("PublishMany", func(t *ftt.Test) {
			assert.Loosely(t, Create(ctx, &out, client, "t1"), should.BeNil)
			out.Reset()

			assert.Loosely(t, PublishMany(ctx, &out, client, "t1", "hi", 3), should.BeNil)
			lines := strings.Split(strings.TrimSpace(out.String()), "\n")
			assert.Loosely(t, lines, should.HaveLength(3))
			assert.Loosely(t, lines[2], should.MatchRegexp(`^Message #2 published as \S+\.$`))

			got := map[string]bool{}
			for _, m := range srv.Messages() {
				got[string(m.Data)] = true
			}
			assert.Loosely(t, got, should.Match(map[string]bool{
				"hi #0": true,
				"hi #1": true,
				"hi #2": true,
			}))
		})

		t.Run("PublishMany needs a positive count", func(t *ftt.Test) {
			assert.Loosely(t, Create(ctx, &out, client, "t1"), should.BeNil)
			out.Reset()
			for _, count := range []int{0, -3} {
				assert.Loosely(t, PublishMany(ctx, &out, client, "t1", "hi", count), should.ErrLike("must be at least 1"))
			}
			assert.Loosely(t, out.String(), should.BeEmpty)
		})

		t.Run("Publish to missing topic", func(t *ftt.Test) {
			assert.Loosely(t, Publish(ctx, &out, client, "nope", "hello"), should.ErrLike(`publishing to "nope"`))
		})

		t.Run("Delete", func(t *ftt.Test) {
			assert.Loosely(t, Create(ctx, &out, client, "t1"), should.BeNil)
			out.Reset()
			assert.Loosely(t, Delete(ctx, &out, client, "t1"), should.BeNil)
			assert.Loosely(t, out.String(), should.Equal("Topic t1 deleted.\n"))

			exists, err := client.Topic("t1").Exists(ctx)
			assert.Loosely(t, err, should.BeNil)
			assert.Loosely(t, exists, should.BeFalse)
		})
	})
}
