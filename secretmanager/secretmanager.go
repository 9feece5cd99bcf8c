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

// Package secretmanager shows how to store and read secrets with Secret
// Manager.
package secretmanager

import (
	"context"
	"fmt"
	"io"

	"cloud.google.com/go/iam/apiv1/iampb"
	secretmanager "cloud.google.com/go/secretmanager/apiv1"
	"cloud.google.com/go/secretmanager/apiv1/secretmanagerpb"
	"google.golang.org/api/iterator"

	"go.chromium.org/luci/common/errors"
	"go.chromium.org/luci/common/logging"

	"github.com/luci/gcpsamples/common/crc32c"
)

// AccessorRole lets a member read secret versions.
const AccessorRole = "roles/secretmanager.secretAccessor"

// ErrChecksumMismatch is returned when a secret payload is corrupted in
// transit.
var ErrChecksumMismatch = errors.New("secret payload checksum mismatch")

// SecretName returns the resource name of a secret.
func SecretName(project, secretID string) string {
	return fmt.Sprintf("projects/%s/secrets/%s", project, secretID)
}

// CreateSecret creates an automatically replicated secret with no versions.
func CreateSecret(ctx context.Context, w io.Writer, client *secretmanager.Client, project, secretID string) (*secretmanagerpb.Secret, error) {
	secret, err := client.CreateSecret(ctx, &secretmanagerpb.CreateSecretRequest{
		Parent:   "projects/" + project,
		SecretId: secretID,
		Secret: &secretmanagerpb.Secret{
			Replication: &secretmanagerpb.Replication{
				Replication: &secretmanagerpb.Replication_Automatic_{
					Automatic: &secretmanagerpb.Replication_Automatic{},
				},
			},
		},
	})
	if err != nil {
		return nil, errors.Annotate(err, "creating secret %q", secretID).Err()
	}
	fmt.Fprintf(w, "Created secret: %s\n", secret.Name)
	return secret, nil
}

// AddSecretVersion adds payload as the newest version of a secret.
func AddSecretVersion(ctx context.Context, w io.Writer, client *secretmanager.Client, secretName string, payload []byte) (*secretmanagerpb.SecretVersion, error) {
	crc := crc32c.Checksum(payload)
	version, err := client.AddSecretVersion(ctx, &secretmanagerpb.AddSecretVersionRequest{
		Parent: secretName,
		Payload: &secretmanagerpb.SecretPayload{
			Data:       payload,
			DataCrc32C: &crc,
		},
	})
	if err != nil {
		return nil, errors.Annotate(err, "adding version to %q", secretName).Err()
	}
	fmt.Fprintf(w, "Added secret version: %s\n", version.Name)
	return version, nil
}

// AccessSecretVersion reads a secret version, e.g. ".../versions/latest".
//
// The payload checksum is verified when the server sends one.
func AccessSecretVersion(ctx context.Context, w io.Writer, client *secretmanager.Client, versionName string) ([]byte, error) {
	resp, err := client.AccessSecretVersion(ctx, &secretmanagerpb.AccessSecretVersionRequest{
		Name: versionName,
	})
	if err != nil {
		return nil, errors.Annotate(err, "accessing %q", versionName).Err()
	}
	data := resp.GetPayload().GetData()
	if want := resp.GetPayload().DataCrc32C; want != nil && *want != crc32c.Checksum(data) {
		return nil, errors.Annotate(ErrChecksumMismatch, "accessing %q", versionName).Err()
	}
	fmt.Fprintf(w, "Plaintext: %s\n", data)
	return data, nil
}

// ListSecrets prints the names of all secrets in the project.
func ListSecrets(ctx context.Context, w io.Writer, client *secretmanager.Client, project string) error {
	it := client.ListSecrets(ctx, &secretmanagerpb.ListSecretsRequest{
		Parent: "projects/" + project,
	})
	for {
		s, err := it.Next()
		if err == iterator.Done {
			return nil
		}
		if err != nil {
			return errors.Annotate(err, "listing secrets").Err()
		}
		fmt.Fprintf(w, "Found secret %s\n", s.Name)
	}
}

// DeleteSecret deletes a secret with all its versions.
func DeleteSecret(ctx context.Context, w io.Writer, client *secretmanager.Client, secretName string) error {
	err := client.DeleteSecret(ctx, &secretmanagerpb.DeleteSecretRequest{Name: secretName})
	if err != nil {
		return errors.Annotate(err, "deleting %q", secretName).Err()
	}
	fmt.Fprintf(w, "Deleted secret %s\n", secretName)
	return nil
}

// GrantAccess lets member (e.g. "user:someone@example.com") read the secret.
//
// Granting a role the member already has is a no-op.
func GrantAccess(ctx context.Context, w io.Writer, client *secretmanager.Client, secretName, member string) error {
	policy, err := client.GetIamPolicy(ctx, &iampb.GetIamPolicyRequest{Resource: secretName})
	if err != nil {
		return errors.Annotate(err, "getting IAM policy of %q", secretName).Err()
	}
	if !addBinding(policy, AccessorRole, member) {
		logging.Infof(ctx, "%s already has %s on %s", member, AccessorRole, secretName)
		return nil
	}
	_, err = client.SetIamPolicy(ctx, &iampb.SetIamPolicyRequest{
		Resource: secretName,
		Policy:   policy,
	})
	if err != nil {
		return errors.Annotate(err, "setting IAM policy of %q", secretName).Err()
	}
	fmt.Fprintf(w, "Updated IAM policy for %s\n", secretName)
	return nil
}

// addBinding adds member to role in policy and reports whether it changed.
func addBinding(policy *iampb.Policy, role, member string) bool {
	for _, b := range policy.Bindings {
		if b.Role != role {
			continue
		}
		for _, m := range b.Members {
			if m == member {
				return false
			}
		}
		b.Members = append(b.Members, member)
		return true
	}
	policy.Bindings = append(policy.Bindings, &iampb.Binding{
		Role:    role,
		Members: []string{member},
	})
	return true
}
