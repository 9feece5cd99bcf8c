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


package securitycenter

import (
	"context"
	"strings"
	"sync"
	"testing"

	securitycenter "cloud.google.com/go/securitycenter/apiv1"
	"cloud.google.com/go/securitycenter/apiv1/securitycenterpb"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"go.chromium.org/luci/common/testing/ftt"
	"go.chromium.org/luci/common/testing/truth/assert"
	"go.chromium.org/luci/common/testing/truth/should"

	"github.com/luci/gcpsamples/internal/testutil/fakegrpc"
)

// fakeSCC serves one organization, one source or finding per page.
type fakeSCC struct {
	securitycenterpb.UnimplementedSecurityCenterServer

	m       sync.Mutex
	filters []string
}

var findings = []*securitycenterpb.Finding{
	{
		Name:         "organizations/123/sources/1/findings/f1",
		Category:     "OPEN_FIREWALL",
		State:        securitycenterpb.Finding_ACTIVE,
		ResourceName: "//compute.googleapis.com/projects/p/global/firewalls/fw",
	},
	{
		Name:         "organizations/123/sources/2/findings/f2",
		Category:     "PUBLIC_BUCKET_ACL",
		State:        securitycenterpb.Finding_INACTIVE,
		ResourceName: "//storage.googleapis.com/bucket",
	},
}

func page(token string, total int) (start int, next string) {
	if token != "" {
		start = int(token[0] - '0')
	}
	if start+1 < total {
		next = string(rune('0' + start + 1))
	}
	return start, next
}

func (f *fakeSCC) ListSources(_ context.Context, req *securitycenterpb.ListSourcesRequest) (*securitycenterpb.ListSourcesResponse, error) {
	if req.Parent != "organizations/123" {
		return nil, status.Errorf(codes.NotFound, "no such organization %q", req.Parent)
	}
	sources := []*securitycenterpb.Source{
		{Name: "organizations/123/sources/1", DisplayName: "Security Health Analytics"},
		{Name: "organizations/123/sources/2", DisplayName: "Web Security Scanner"},
	}
	start, next := page(req.PageToken, len(sources))
	return &securitycenterpb.ListSourcesResponse{
		Sources:       sources[start : start+1],
		NextPageToken: next,
	}, nil
}

func (f *fakeSCC) ListFindings(_ context.Context, req *securitycenterpb.ListFindingsRequest) (*securitycenterpb.ListFindingsResponse, error) {
	f.m.Lock()
	f.filters = append(f.filters, req.Filter)
	f.m.Unlock()

	var matching []*securitycenterpb.ListFindingsResponse_ListFindingsResult
	for _, fd := range findings {
		if !strings.HasPrefix(fd.Name, strings.TrimSuffix(req.Parent, "-")) {
			continue
		}
		if req.Filter == `state="ACTIVE"` && fd.State != securitycenterpb.Finding_ACTIVE {
			continue
		}
		matching = append(matching, &securitycenterpb.ListFindingsResponse_ListFindingsResult{Finding: fd})
	}
	resp := &securitycenterpb.ListFindingsResponse{}
	if len(matching) > 0 {
		start, next := page(req.PageToken, len(matching))
		resp.ListFindingsResults = matching[start : start+1]
		resp.NextPageToken = next
	}
	return resp, nil
}

func (f *fakeSCC) seenFilters() []string {
	f.m.Lock()
	defer f.m.Unlock()
	return append([]string(nil), f.filters...)
}

func TestSecurityCenter(t *testing.T) {
	t.Parallel()

	ftt.Run("With fake Security Command Center", t, func(t *ftt.Test) {
		ctx := context.Background()

		fake := &fakeSCC{}
		opts := fakegrpc.Start(t, func(s *grpc.Server) {
			securitycenterpb.RegisterSecurityCenterServer(s, fake)
		})
		client, err := securitycenter.NewClient(ctx, opts...)
		assert.Loosely(t, err, should.BeNil)
		t.Cleanup(func() { client.Close() })

		var out strings.Builder

		t.Run("SourcePath", func(t *ftt.Test) {
			assert.Loosely(t, SourcePath("123", AllSources), should.Equal("organizations/123/sources/-"))
		})

		t.Run("ListSources", func(t *ftt.Test) {
			n, err := ListSources(ctx, &out, client, "123")
			assert.Loosely(t, err, should.BeNil)
			assert.Loosely(t, n, should.Equal(2))
			assert.Loosely(t, out.String(), should.Equal(
				"organizations/123/sources/1\tSecurity Health Analytics\n"+
					"organizations/123/sources/2\tWeb Security Scanner\n"))
		})

		t.Run("ListSources of unknown organization", func(t *ftt.Test) {
			_, err := ListSources(ctx, &out, client, "999")
			assert.Loosely(t, err, should.ErrLike("listing sources of organizations/999"))
			assert.Loosely(t, status.Code(err), should.Equal(codes.NotFound))
		})

		t.Run("ListFindings across sources", func(t *ftt.Test) {
			n, err := ListFindings(ctx, &out, client, SourcePath("123", AllSources), "")
			assert.Loosely(t, err, should.BeNil)
			assert.Loosely(t, n, should.Equal(2))
			assert.Loosely(t, out.String(), should.Equal(
				"OPEN_FIREWALL\tACTIVE\t//compute.googleapis.com/projects/p/global/firewalls/fw\torganizations/123/sources/1/findings/f1\n"+
					"PUBLIC_BUCKET_ACL\tINACTIVE\t//storage.googleapis.com/bucket\torganizations/123/sources/2/findings/f2\n"))
		})

		t.Run("ListFindings filtered", func(t *ftt.Test) {
			n, err := ListFindings(ctx, &out, client, SourcePath("123", AllSources), `state="ACTIVE"`)
			assert.Loosely(t, err, should.BeNil)
			assert.Loosely(t, n, should.Equal(1))
			assert.Loosely(t, out.String(), should.HavePrefix("OPEN_FIREWALL\tACTIVE\t"))
			assert.Loosely(t, fake.seenFilters(), should.Match([]string{`state="ACTIVE"`}))
		})

		t.Run("ListFindings of one source", func(t *ftt.Test) {
			n, err := ListFindings(ctx, &out, client, SourcePath("123", "2"), "")
			assert.Loosely(t, err, should.BeNil)
			assert.Loosely(t, n, should.Equal(1))
			assert.Loosely(t, out.String(), should.HavePrefix("PUBLIC_BUCKET_ACL\t"))
		})
	})
}
