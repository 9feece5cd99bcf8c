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

package storage

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"cloud.google.com/go/storage"
	"github.com/maruel/subcommands"

	"go.chromium.org/luci/common/clock"
	"go.chromium.org/luci/common/errors"

	"github.com/luci/gcpsamples/common/samplecli"
)

func newClient(ctx context.Context, _ string) (*storage.Client, error) {
	return storage.NewClient(ctx)
}

// parseObjectPath is ParsePath requiring a non-empty object name.
func parseObjectPath(path string) (bucket, object string, err error) {
	if bucket, object, err = ParsePath(path); err == nil && object == "" {
		err = errors.Reason("%q has no object name", path).Err()
	}
	if err != nil {
		err = errors.Annotate(samplecli.ErrUsage, "%s", err).Err()
	}
	return
}

// Commands returns the Cloud Storage subcommands.
func Commands() []*subcommands.Command {
	return []*subcommands.Command{
		samplecli.Spec{
			UsageLine:    "storage-list-buckets",
			ShortDesc:    "lists buckets in the project",
			NeedsProject: true,
			Exec: samplecli.WithClient(newClient, func(ctx context.Context, r *samplecli.Run, c *storage.Client, _ []string) error {
				return ListBuckets(ctx, r.Stdout(), c, r.ProjectID)
			}),
		}.Command(),
		samplecli.Spec{
			UsageLine: "storage-list gs://bucket[/prefix]",
			ShortDesc: "lists objects in a bucket",
			MinArgs:   1,
			MaxArgs:   1,
			Exec: samplecli.WithClient(newClient, func(ctx context.Context, r *samplecli.Run, c *storage.Client, args []string) error {
				bucket, prefix, err := ParsePath(args[0])
				if err != nil {
					return errors.Annotate(samplecli.ErrUsage, "%s", err).Err()
				}
				return ListObjects(ctx, r.Stdout(), c, bucket, prefix)
			}),
		}.Command(),
		samplecli.Spec{
			UsageLine: "storage-upload [-gzip] <file> gs://bucket/object",
			ShortDesc: "uploads a local file",
			MinArgs:   2,
			MaxArgs:   2,
			Build: func(fs *flag.FlagSet) samplecli.Exec {
				compress := fs.Bool("gzip", false, "Store the object gzip-encoded.")
				return samplecli.WithClient(newClient, func(ctx context.Context, r *samplecli.Run, c *storage.Client, args []string) error {
					bucket, object, err := parseObjectPath(args[1])
					if err != nil {
						return err
					}
					f, err := os.Open(args[0])
					if err != nil {
						return errors.Annotate(err, "opening %s", args[0]).Err()
					}
					defer f.Close()
					return Upload(ctx, r.Stdout(), c, bucket, object, f, *compress)
				})
			},
		}.Command(),
		samplecli.Spec{
			UsageLine: "storage-download gs://bucket/object [file]",
			ShortDesc: "downloads an object to a file or stdout",
			MinArgs:   1,
			MaxArgs:   2,
			Exec: samplecli.WithClient(newClient, func(ctx context.Context, r *samplecli.Run, c *storage.Client, args []string) (err error) {
				bucket, object, err := parseObjectPath(args[0])
				if err != nil {
					return err
				}
				var dst io.Writer = r.Stdout()
				if len(args) == 2 {
					f, ferr := os.Create(args[1])
					if ferr != nil {
						return errors.Annotate(ferr, "creating %s", args[1]).Err()
					}
					defer func() {
						if cerr := f.Close(); err == nil {
							err = cerr
						}
					}()
					dst = f
				}
				return Download(ctx, dst, c, bucket, object)
			}),
		}.Command(),
		samplecli.Spec{
			UsageLine: "storage-delete gs://bucket/object",
			ShortDesc: "deletes an object",
			MinArgs:   1,
			MaxArgs:   1,
			Exec: samplecli.WithClient(newClient, func(ctx context.Context, r *samplecli.Run, c *storage.Client, args []string) error {
				bucket, object, err := parseObjectPath(args[0])
				if err != nil {
					return err
				}
				return DeleteObject(ctx, r.Stdout(), c, bucket, object)
			}),
		}.Command(),
		samplecli.Spec{
			UsageLine: "storage-sign-url [-method GET|PUT] [-ttl D] <key.json> gs://bucket/object",
			ShortDesc: "prints a V4 signed URL for an object",
			MinArgs:   2,
			MaxArgs:   2,
			Build: func(fs *flag.FlagSet) samplecli.Exec {
				method := fs.String("method", "GET", "HTTP method the URL is valid for.")
				ttl := fs.Duration("ttl", 15*time.Minute, "How long the URL stays valid, at most 7 days.")
				return func(ctx context.Context, r *samplecli.Run, args []string) error {
					bucket, object, err := parseObjectPath(args[1])
					if err != nil {
						return err
					}
					signer, err := LoadSigner(args[0])
					if err != nil {
						return err
					}
					u, err := SignedURL(signer, bucket, object, *method, clock.Now(ctx).Add(*ttl))
					if err != nil {
						return err
					}
					fmt.Fprintln(r.Stdout(), u)
					return nil
				}
			},
		}.Command(),
	}
}
