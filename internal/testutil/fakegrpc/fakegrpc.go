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

// Package fakegrpc runs in-process gRPC servers that stand in for Google Cloud
// APIs in tests.
//
// Generated Cloud clients accept option.ClientOption, so a test registers a
// fake implementation of the service server and points the real client at it:
//
//	opts := fakegrpc.Start(t, func(s *grpc.Server) {
//	  secretmanagerpb.RegisterSecretManagerServiceServer(s, fake)
//	})
//	client, err := secretmanager.NewClient(ctx, opts...)
package fakegrpc

import (
	"net"
	"testing"

	"google.golang.org/api/option"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
)

// Start launches a gRPC server on a local port and returns client options
// that connect to it without authentication.
//
// The server is stopped when the test finishes.
func Start(t testing.TB, register func(*grpc.Server)) []option.ClientOption {
	t.Helper()

	l, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("failed to listen: %s", err)
	}
	srv := grpc.NewServer()
	register(srv)
	go srv.Serve(l)
	t.Cleanup(srv.Stop)

	return []option.ClientOption{
		option.WithEndpoint(l.Addr().String()),
		option.WithoutAuthentication(),
		option.WithGRPCDialOption(grpc.WithTransportCredentials(insecure.NewCredentials())),
	}
}
