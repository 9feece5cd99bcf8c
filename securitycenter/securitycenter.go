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


// Package securitycenter lists sources and findings in Security Command
// Center.
package securitycenter

import (
	"context"
	"fmt"
	"io"

	securitycenter "cloud.google.com/go/securitycenter/apiv1"
	"cloud.google.com/go/securitycenter/apiv1/securitycenterpb"
	"google.golang.org/api/iterator"

	"go.chromium.org/luci/common/errors"
)

// AllSources is the source ID matching every source of an organization.
const AllSources = "-"

// SourcePath returns "organizations/O/sources/S".
func SourcePath(organization, source string) string {
	return fmt.Sprintf("organizations/%s/sources/%s", organization, source)
}

// ListSources prints the finding sources of an organization and returns how
// many there are.
func ListSources(ctx context.Context, w io.Writer, client *securitycenter.Client, organization string) (int, error) {
	parent := "organizations/" + organization
	it := client.ListSources(ctx, &securitycenterpb.ListSourcesRequest{Parent: parent})
	n := 0
	for {
		src, err := it.Next()
		if err == iterator.Done {
			return n, nil
		}
		if err != nil {
			return n, errors.Annotate(err, "listing sources of %s", parent).Err()
		}
		fmt.Fprintf(w, "%s\t%s\n", src.Name, src.DisplayName)
		n++
	}
}

// ListFindings prints the findings of a source matching filter and returns
// how many there are.
//
// Use AllSources as the source to list findings across the organization. An
// empty filter matches everything, e.g. `state="ACTIVE"` narrows it down.
func ListFindings(ctx context.Context, w io.Writer, client *securitycenter.Client, sourceName, filter string) (int, error) {
	it := client.ListFindings(ctx, &securitycenterpb.ListFindingsRequest{
		Parent: sourceName,
		Filter: filter,
	})
	n := 0
	for {
		res, err := it.Next()
		if err == iterator.Done {
			return n, nil
		}
		if err != nil {
			return n, errors.Annotate(err, "listing findings of %s", sourceName).Err()
		}
		f := res.Finding
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", f.Category, f.State, f.ResourceName, f.Name)
		n++
	}
}
