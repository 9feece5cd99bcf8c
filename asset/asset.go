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

// Package asset lists resources with Cloud Asset Inventory.
package asset

import (
	"context"
	"fmt"
	"io"

	asset "cloud.google.com/go/asset/apiv1"
	"cloud.google.com/go/asset/apiv1/assetpb"
	"google.golang.org/api/iterator"

	"go.chromium.org/luci/common/errors"
)

// ListAssets prints the assets under parent ("projects/P", "folders/F" or
// "organizations/O") and returns how many were found.
//
// An empty assetTypes lists all supported types.
func ListAssets(ctx context.Context, w io.Writer, client *asset.Client, parent string, assetTypes []string) (int, error) {
	it := client.ListAssets(ctx, &assetpb.ListAssetsRequest{
		Parent:      parent,
		AssetTypes:  assetTypes,
		ContentType: assetpb.ContentType_RESOURCE,
	})
	n := 0
	for {
		a, err := it.Next()
		if err == iterator.Done {
			return n, nil
		}
		if err != nil {
			return n, errors.Annotate(err, "listing assets of %s", parent).Err()
		}
		fmt.Fprintf(w, "%s\t%s\n", a.AssetType, a.Name)
		n++
	}
}
