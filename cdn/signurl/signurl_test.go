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

package signurl

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"go.chromium.org/luci/common/clock/testclock"
	"go.chromium.org/luci/common/testing/ftt"
	"go.chromium.org/luci/common/testing/truth/assert"
	"go.chromium.org/luci/common/testing/truth/should"
)

func TestSign(t *testing.T) {
	t.Parallel()

	ftt.Run("With a key", t, func(t *ftt.Test) {
		key, err := DecodeKey("nZtRohdNF9m3cKM24IcK4w==")
		assert.Loosely(t, err, should.BeNil)
		exp := time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)

		t.Run("SignURL without query", func(t *ftt.Test) {
			out, err := SignURL("https://example.com/foo", "my-key", key, exp)
			assert.Loosely(t, err, should.BeNil)
			assert.Loosely(t, out, should.Equal(
				"https://example.com/foo?Expires=1893456000&KeyName=my-key&Signature=GE-RguO_RX7UGjFX_QEH3IW0ftw="))
		})

		t.Run("SignURL with query", func(t *ftt.Test) {
			out, err := SignURL("https://example.com/foo?bar=1", "my-key", key, exp)
			assert.Loosely(t, err, should.BeNil)
			assert.Loosely(t, out, should.Equal(
				"https://example.com/foo?bar=1&Expires=1893456000&KeyName=my-key&Signature=2lBTt4Tj4GieyIOGtk09Qwx5juo="))
		})

		t.Run("SignURLPrefix", func(t *ftt.Test) {
			out, err := SignURLPrefix("https://media.example.com/videos/", "my-key", key, exp)
			assert.Loosely(t, err, should.BeNil)
			assert.Loosely(t, out, should.Equal(
				"https://media.example.com/videos/?URLPrefix=aHR0cHM6Ly9tZWRpYS5leGFtcGxlLmNvbS92aWRlb3Mv"+
					"&Expires=1893456000&KeyName=my-key&Signature=NzdoOMIQw3mVS3KxM19XSlW77hk="))
		})

		t.Run("SignCookie", func(t *ftt.Test) {
			out, err := SignCookie("https://media.example.com/videos/", "my-key", key, exp)
			assert.Loosely(t, err, should.BeNil)
			assert.Loosely(t, out, should.Equal(
				"URLPrefix=aHR0cHM6Ly9tZWRpYS5leGFtcGxlLmNvbS92aWRlb3Mv"+
					":Expires=1893456000:KeyName=my-key:Signature=e1rCu0hspTsEci_v3I9KCP9XF0Y="))
		})

		t.Run("bad args", func(t *ftt.Test) {
			_, err := SignURL("", "my-key", key, exp)
			assert.Loosely(t, err, should.ErrLike("empty URL"))
			_, err = SignURL("https://example.com", "", key, exp)
			assert.Loosely(t, err, should.ErrLike("empty key name"))
			_, err = SignURL("https://example.com", "my-key", nil, exp)
			assert.Loosely(t, err, should.ErrLike("empty key"))
			_, err = SignURL("ftp://example.com", "my-key", key, exp)
			assert.Loosely(t, err, should.ErrLike("want http or https"))
		})
	})
}

func TestKeys(t *testing.T) {
	t.Parallel()

	ftt.Run("ReadKeyFile", t, func(t *ftt.Test) {
		dir := t.TempDir()

		t.Run("padded with newline", func(t *ftt.Test) {
			path := filepath.Join(dir, "key")
			assert.Loosely(t, os.WriteFile(path, []byte("nZtRohdNF9m3cKM24IcK4w==\n"), 0600), should.BeNil)
			key, err := ReadKeyFile(path)
			assert.Loosely(t, err, should.BeNil)
			assert.Loosely(t, key, should.HaveLength(16))
		})

		t.Run("unpadded", func(t *ftt.Test) {
			key, err := DecodeKey("nZtRohdNF9m3cKM24IcK4w")
			assert.Loosely(t, err, should.BeNil)
			assert.Loosely(t, key, should.HaveLength(16))
		})

		t.Run("missing file", func(t *ftt.Test) {
			_, err := ReadKeyFile(filepath.Join(dir, "missing"))
			assert.Loosely(t, err, should.ErrLike("reading key file"))
		})

		t.Run("garbage", func(t *ftt.Test) {
			_, err := DecodeKey("not base64!")
			assert.Loosely(t, err, should.ErrLike("decoding key"))
			_, err = DecodeKey("   ")
			assert.Loosely(t, err, should.ErrLike("empty key"))
		})
	})
}

func TestParseExpiration(t *testing.T) {
	t.Parallel()

	ftt.Run("ParseExpiration", t, func(t *ftt.Test) {
		ctx, _ := testclock.UseTime(context.Background(), testclock.TestTimeUTC)

		exp, err := ParseExpiration(ctx, "1893456000")
		assert.Loosely(t, err, should.BeNil)
		assert.Loosely(t, exp.Unix(), should.Equal(int64(1893456000)))

		exp, err = ParseExpiration(ctx, "1h")
		assert.Loosely(t, err, should.BeNil)
		assert.Loosely(t, exp.Equal(testclock.TestTimeUTC.Add(time.Hour)), should.BeTrue)

		_, err = ParseExpiration(ctx, "-1h")
		assert.Loosely(t, err, should.ErrLike("must be in the future"))
		_, err = ParseExpiration(ctx, "tomorrow")
		assert.Loosely(t, err, should.ErrLike("bad expiration"))
	})
}
