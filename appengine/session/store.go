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

// Package session implements a web session store backed by Cloud Datastore.
package session

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"go.chromium.org/luci/common/clock"
	"go.chromium.org/luci/common/errors"
	"go.chromium.org/luci/gae/service/datastore"
)

// Values is the data kept in a session.
type Values map[string]string

// Store keeps sessions as datastore entities keyed by session ID.
//
// Sessions never expire on their own.
type Store struct{}

type sessionEntity struct {
	_kind  string                `gae:"$kind,Session"`
	_extra datastore.PropertyMap `gae:"-,extra"`

	ID      string    `gae:"$id"`
	Data    []byte    `gae:",noindex"`
	Updated time.Time `gae:",noindex"`
}

// GenerateID returns a new random session ID.
func GenerateID() string {
	return uuid.NewString()
}

// Find loads the session with the given ID.
//
// If sid is empty or no such session exists, it returns a freshly generated
// ID and empty values.
func (s *Store) Find(ctx context.Context, sid string) (string, Values, error) {
	if sid == "" {
		return GenerateID(), Values{}, nil
	}
	ent := &sessionEntity{ID: sid}
	switch err := datastore.Get(ctx, ent); {
	case errors.Is(err, datastore.ErrNoSuchEntity):
		return GenerateID(), Values{}, nil
	case err != nil:
		return "", nil, errors.Annotate(err, "fetching session").Err()
	}
	vals := Values{}
	if len(ent.Data) != 0 {
		if err := json.Unmarshal(ent.Data, &vals); err != nil {
			return "", nil, errors.Annotate(err, "decoding session %q", sid).Err()
		}
	}
	return sid, vals, nil
}

// Write stores the session values under sid, replacing what was there.
func (s *Store) Write(ctx context.Context, sid string, vals Values) (string, error) {
	if sid == "" {
		return "", errors.New("empty session ID")
	}
	blob, err := json.Marshal(vals)
	if err != nil {
		return "", errors.Annotate(err, "encoding session").Err()
	}
	ent := &sessionEntity{
		ID:      sid,
		Data:    blob,
		Updated: clock.Now(ctx).UTC(),
	}
	if err := datastore.Put(ctx, ent); err != nil {
		return "", errors.Annotate(err, "storing session").Err()
	}
	return sid, nil
}

// Delete removes the session and returns a new ID to continue with.
func (s *Store) Delete(ctx context.Context, sid string) (string, error) {
	if sid != "" {
		if err := datastore.Delete(ctx, &sessionEntity{ID: sid}); err != nil && !errors.Is(err, datastore.ErrNoSuchEntity) {
			return "", errors.Annotate(err, "deleting session").Err()
		}
	}
	return GenerateID(), nil
}
