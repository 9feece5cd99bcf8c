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
	"flag"
	"fmt"
	"strconv"
	"time"

	"github.com/maruel/subcommands"

	"go.chromium.org/luci/common/clock"
	"go.chromium.org/luci/common/errors"

	"github.com/luci/gcpsamples/common/samplecli"
)

// Cmd returns the cdn-sign-url subcommand.
func Cmd() *subcommands.Command {
	return samplecli.Spec{
		UsageLine: "cdn-sign-url [-prefix | -cookie] <url> <key-name> <key-file> <expiration>",
		ShortDesc: "signs a URL, URL prefix or cookie for Cloud CDN",
		LongDesc: `Signs a URL, URL prefix or cookie for Cloud CDN.

<expiration> is either a Unix timestamp or a duration from now, e.g. "1h".
<key-file> holds the base64url encoded key registered with the backend.`,
		MinArgs: 4,
		MaxArgs: 4,
		Build: func(fs *flag.FlagSet) samplecli.Exec {
			prefix := fs.Bool("prefix", false, "Sign every URL under <url> instead of <url> itself.")
			cookie := fs.Bool("cookie", false, "Print a signed cookie for every URL under <url>.")
			return func(ctx context.Context, r *samplecli.Run, args []string) error {
				if *prefix && *cookie {
					return errors.Annotate(samplecli.ErrUsage, "-prefix and -cookie are mutually exclusive").Err()
				}
				key, err := ReadKeyFile(args[2])
				if err != nil {
					return err
				}
				expiration, err := ParseExpiration(ctx, args[3])
				if err != nil {
					return err
				}

				var out string
				switch {
				case *prefix:
					out, err = SignURLPrefix(args[0], args[1], key, expiration)
				case *cookie:
					var val string
					if val, err = SignCookie(args[0], args[1], key, expiration); err == nil {
						out = CookieName + "=" + val
					}
				default:
					out, err = SignURL(args[0], args[1], key, expiration)
				}
				if err != nil {
					return err
				}
				_, err = fmt.Fprintln(r.Stdout(), out)
				return err
			}
		},
	}.Command()
}

// ParseExpiration parses either a Unix timestamp or a duration relative to
// the current time.
func ParseExpiration(ctx context.Context, s string) (time.Time, error) {
	if sec, err := strconv.ParseInt(s, 10, 64); err == nil {
		return time.Unix(sec, 0).UTC(), nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return time.Time{}, errors.Reason("bad expiration %q: want a Unix timestamp or a duration", s).Err()
	}
	if d <= 0 {
		return time.Time{}, errors.Reason("bad expiration %q: must be in the future", s).Err()
	}
	return clock.Now(ctx).Add(d).UTC(), nil
}
