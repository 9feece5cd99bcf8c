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

// Package kms shows how to encrypt and decrypt data with Cloud KMS while
// verifying payload integrity end to end.
package kms

import (
	"context"
	"fmt"

	kms "cloud.google.com/go/kms/apiv1"
	"cloud.google.com/go/kms/apiv1/kmspb"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"go.chromium.org/luci/common/errors"

	"github.com/luci/gcpsamples/common/crc32c"
)

// ErrCorrupted means a request or response was corrupted in transit.
var ErrCorrupted = errors.New("payload corrupted in transit")

// KeyName returns the resource name of a symmetric crypto key.
func KeyName(project, location, keyRing, key string) string {
	return fmt.Sprintf("projects/%s/locations/%s/keyRings/%s/cryptoKeys/%s", project, location, keyRing, key)
}

// Encrypt encrypts plaintext with the primary version of keyName.
func Encrypt(ctx context.Context, client *kms.KeyManagementClient, keyName string, plaintext []byte) ([]byte, error) {
	resp, err := client.Encrypt(ctx, &kmspb.EncryptRequest{
		Name:            keyName,
		Plaintext:       plaintext,
		PlaintextCrc32C: wrapperspb.Int64(crc32c.Checksum(plaintext)),
	})
	if err != nil {
		return nil, errors.Annotate(err, "encrypting with %q", keyName).Err()
	}
	switch {
	case !resp.VerifiedPlaintextCrc32C:
		return nil, errors.Annotate(ErrCorrupted, "encrypt request").Err()
	case resp.CiphertextCrc32C.GetValue() != crc32c.Checksum(resp.Ciphertext):
		return nil, errors.Annotate(ErrCorrupted, "encrypt response").Err()
	}
	return resp.Ciphertext, nil
}

// Decrypt decrypts ciphertext produced by Encrypt with the same key.
func Decrypt(ctx context.Context, client *kms.KeyManagementClient, keyName string, ciphertext []byte) ([]byte, error) {
	resp, err := client.Decrypt(ctx, &kmspb.DecryptRequest{
		Name:             keyName,
		Ciphertext:       ciphertext,
		CiphertextCrc32C: wrapperspb.Int64(crc32c.Checksum(ciphertext)),
	})
	if err != nil {
		return nil, errors.Annotate(err, "decrypting with %q", keyName).Err()
	}
	if resp.PlaintextCrc32C.GetValue() != crc32c.Checksum(resp.Plaintext) {
		return nil, errors.Annotate(ErrCorrupted, "decrypt response").Err()
	}
	return resp.Plaintext, nil
}
