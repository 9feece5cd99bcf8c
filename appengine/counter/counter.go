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

// Package counter counts visitors.
//
// InstanceCounter keeps the count in process memory. App Engine and Cloud Run
// run many instances and recycle them at will, so each instance reports its
// own, partial count that resets on restart. RedisCounter keeps the count in
// Memorystore, shared by all instances.
package counter

import (
	"fmt"
	"net/http"
	"sync/atomic"

	"github.com/gomodule/redigo/redis"

	"go.chromium.org/luci/common/errors"
	"go.chromium.org/luci/server/router"
)

// Key is the Redis key holding the count.
const Key = "visits"

// InstanceCounter counts visits seen by this process only.
type InstanceCounter struct {
	visits atomic.Int64
}

// Increment bumps the counter and returns the new value.
func (c *InstanceCounter) Increment() int64 {
	return c.visits.Add(1)
}

// Handle serves the visitor number.
func (c *InstanceCounter) Handle(rc *router.Context) {
	fmt.Fprintf(rc.Writer, "Visitor number: %d\n", c.Increment())
}

// RedisCounter counts visits in Redis.
type RedisCounter struct {
	Pool *redis.Pool
}

// Increment bumps the counter and returns the new value.
func (c *RedisCounter) Increment() (int64, error) {
	conn := c.Pool.Get()
	defer conn.Close()
	n, err := redis.Int64(conn.Do("INCR", Key))
	if err != nil {
		return 0, errors.Annotate(err, "incrementing %q", Key).Err()
	}
	return n, nil
}

// Handle serves the visitor number.
func (c *RedisCounter) Handle(rc *router.Context) {
	n, err := c.Increment()
	if err != nil {
		errors.Log(rc.Request.Context(), err)
		http.Error(rc.Writer, "Error incrementing visitor counter", http.StatusInternalServerError)
		return
	}
	fmt.Fprintf(rc.Writer, "Visitor number: %d\n", n)
}

// NewPool returns a Redis connection pool for the given address.
func NewPool(addr string, maxConnections int) *redis.Pool {
	return &redis.Pool{
		MaxIdle: maxConnections,
		Dial: func() (redis.Conn, error) {
			return redis.Dial("tcp", addr)
		},
	}
}
