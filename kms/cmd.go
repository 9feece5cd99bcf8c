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

package kms

import (
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"os"
	"strings"

	kms "cloud.google.com/go/kms/apiv1"
	"github.com/maruel/subcommands"

	"go.chromium.org/luci/common/errors"

	"github.com/luci/gcpsamples/common/samplecli"
)

func newClient(ctx context.Context, _ string) (*kms.KeyManagementClient, error) {
	return kms.NewKeyManagementClient(ctx)
}

const keyArgs = "<location> <key-ring> <key>"

// Commands returns the Cloud KMS subcommands.
//
// Ciphertext is exchanged as standard base64 on the command line.
func Commands() []*subcommands.Command {
	return []*subcommands.Command{
		samplecli.Spec{
			UsageLine:    "kms-encrypt " + keyArgs + " <plaintext>",
			ShortDesc:    "encrypts a string, printing base64 ciphertext",
			MinArgs:      4,
			MaxArgs:      4,
			NeedsProject: true,
			Exec: samplecli.WithClient(newClient, func(ctx context.Context, r *samplecli.Run, c *kms.KeyManagementClient, args []string) error {
				ct, err := Encrypt(ctx, c, KeyName(r.ProjectID, args[0], args[1], args[2]), []byte(args[3]))
				if err != nil {
					return err
				}
				fmt.Fprintln(r.Stdout(), base64.StdEncoding.EncodeToString(ct))
				return nil
			}),
		}.Command(),
		samplecli.Spec{
			UsageLine:    "kms-decrypt " + keyArgs + " <base64-ciphertext | ->",
			ShortDesc:    "decrypts base64 ciphertext",
			MinArgs:      4,
			MaxArgs:      4,
			NeedsProject: true,
			Exec: samplecli.WithClient(newClient, func(ctx context.Context, r *samplecli.Run, c *kms.KeyManagementClient, args []string) error {
				encoded := args[3]
				if encoded == "-" {
					blob, err := readAll(os.Stdin)
					if err != nil {
						return err
					}
					encoded = blob
				}
				ct, err := base64.StdEncoding.DecodeString(strings.TrimSpace(encoded))
				if err != nil {
					return errors.Annotate(samplecli.ErrUsage, "ciphertext is not base64: %s", err).Err()
				}
				pt, err := Decrypt(ctx, c, KeyName(r.ProjectID, args[0], args[1], args[2]), ct)
				if err != nil {
					return err
				}
				fmt.Fprintf(r.Stdout(), "%s\n", pt)
				return nil
			}),
		}.Command(),
	}
}

func readAll(r io.Reader) (string, error) {
	blob, err := io.ReadAll(r)
	if err != nil {
		return "", errors.Annotate(err, "reading stdin").Err()
	}
	return string(blob), nil
}
