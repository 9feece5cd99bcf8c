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

// Package storage shows how to work with Cloud Storage buckets and objects.
package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"cloud.google.com/go/storage"
	"github.com/dustin/go-humanize"
	"github.com/klauspost/compress/gzip"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/iterator"

	"go.chromium.org/luci/common/clock"
	"go.chromium.org/luci/common/errors"
	"go.chromium.org/luci/common/logging"
)

// ParsePath splits "gs://bucket/object" into its parts.
//
// The object part may be empty ("gs://bucket" or "gs://bucket/").
func ParsePath(path string) (bucket, object string, err error) {
	rest, ok := strings.CutPrefix(path, "gs://")
	if !ok {
		return "", "", errors.Reason("%q is not a gs:// path", path).Err()
	}
	bucket, object, _ = strings.Cut(rest, "/")
	if bucket == "" {
		return "", "", errors.Reason("%q has no bucket", path).Err()
	}
	return bucket, object, nil
}

// ListBuckets prints the names of the buckets in a project.
func ListBuckets(ctx context.Context, w io.Writer, client *storage.Client, project string) error {
	it := client.Buckets(ctx, project)
	for {
		b, err := it.Next()
		if err == iterator.Done {
			return nil
		}
		if err != nil {
			return errors.Annotate(err, "listing buckets").Err()
		}
		fmt.Fprintln(w, b.Name)
	}
}

// ListObjects prints objects whose names start with prefix, with their sizes.
func ListObjects(ctx context.Context, w io.Writer, client *storage.Client, bucket, prefix string) error {
	it := client.Bucket(bucket).Objects(ctx, &storage.Query{Prefix: prefix})
	for {
		o, err := it.Next()
		if err == iterator.Done {
			return nil
		}
		if err != nil {
			return errors.Annotate(err, "listing gs://%s/%s", bucket, prefix).Err()
		}
		fmt.Fprintf(w, "%s\t%s\n", o.Name, humanize.Bytes(uint64(o.Size)))
	}
}

// Upload copies r into an object.
//
// With compress set the object is stored gzip-encoded and served decompressed
// to clients that don't accept gzip.
func Upload(ctx context.Context, w io.Writer, client *storage.Client, bucket, object string, r io.Reader, compress bool) error {
	ctx, cancel := clock.WithTimeout(ctx, 5*time.Minute)
	defer cancel()

	ow := client.Bucket(bucket).Object(object).NewWriter(ctx)
	var dst io.Writer = ow
	var zw *gzip.Writer
	if compress {
		ow.ContentEncoding = "gzip"
		zw = gzip.NewWriter(ow)
		dst = zw
	}
	n, err := io.Copy(dst, r)
	if err == nil && zw != nil {
		err = zw.Close()
	}
	if err != nil {
		cancel() // aborts the upload
		return errors.Annotate(err, "uploading gs://%s/%s", bucket, object).Err()
	}
	if err := ow.Close(); err != nil {
		return errors.Annotate(err, "finishing upload of gs://%s/%s", bucket, object).Err()
	}
	logging.Debugf(ctx, "Uploaded %d bytes", n)
	fmt.Fprintf(w, "Uploaded gs://%s/%s (%s)\n", bucket, object, humanize.Bytes(uint64(n)))
	return nil
}

// Download copies an object into dst.
func Download(ctx context.Context, dst io.Writer, client *storage.Client, bucket, object string) error {
	r, err := client.Bucket(bucket).Object(object).NewReader(ctx)
	if err != nil {
		return errors.Annotate(err, "opening gs://%s/%s", bucket, object).Err()
	}
	defer r.Close()
	if _, err := io.Copy(dst, r); err != nil {
		return errors.Annotate(err, "reading gs://%s/%s", bucket, object).Err()
	}
	return nil
}

// DeleteObject deletes an object.
func DeleteObject(ctx context.Context, w io.Writer, client *storage.Client, bucket, object string) error {
	if err := client.Bucket(bucket).Object(object).Delete(ctx); err != nil {
		return errors.Annotate(err, "deleting gs://%s/%s", bucket, object).Err()
	}
	fmt.Fprintf(w, "Deleted gs://%s/%s\n", bucket, object)
	return nil
}

// Signer identifies the service account signing URLs.
type Signer struct {
	Email      string
	PrivateKey []byte // PEM
}

// LoadSigner reads a service account JSON key file.
func LoadSigner(path string) (Signer, error) {
	blob, err := os.ReadFile(path)
	if err != nil {
		return Signer{}, errors.Annotate(err, "reading service account key").Err()
	}
	cfg, err := google.JWTConfigFromJSON(blob)
	if err != nil {
		return Signer{}, errors.Annotate(err, "parsing service account key %s", path).Err()
	}
	return Signer{Email: cfg.Email, PrivateKey: cfg.PrivateKey}, nil
}

// SignedURL returns a V4 signed URL granting method (GET or PUT) access to
// an object until expires.
func SignedURL(s Signer, bucket, object, method string, expires time.Time) (string, error) {
	switch method {
	case "GET", "PUT":
	default:
		return "", errors.Reason("unsupported method %q", method).Err()
	}
	opts := &storage.SignedURLOptions{
		GoogleAccessID: s.Email,
		PrivateKey:     s.PrivateKey,
		Method:         method,
		Expires:        expires,
		Scheme:         storage.SigningSchemeV4,
	}
	if method == "PUT" {
		opts.ContentType = "application/octet-stream"
	}
	u, err := storage.SignedURL(bucket, object, opts)
	if err != nil {
		return "", errors.Annotate(err, "signing gs://%s/%s", bucket, object).Err()
	}
	return u, nil
}
