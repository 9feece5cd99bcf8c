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

// Package signurl signs URLs and cookies for Cloud CDN signed requests.
//
// See https://cloud.google.com/cdn/docs/using-signed-urls.
package signurl

import (
	"crypto/hmac"
	"crypto/sha1"
	"encoding/base64"
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"go.chromium.org/luci/common/errors"
)

// CookieName is the name of the Cloud CDN signed cookie.
const CookieName = "Cloud-CDN-Cookie"

// ReadKeyFile reads a base64url encoded signing key, as produced by
// `head -c 16 /dev/urandom | base64 | tr +/ -_`.
func ReadKeyFile(path string) ([]byte, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Annotate(err, "reading key file").Err()
	}
	return DecodeKey(string(b))
}

// DecodeKey decodes a base64url encoded key. Padding is optional.
func DecodeKey(encoded string) ([]byte, error) {
	encoded = strings.TrimRight(strings.TrimSpace(encoded), "=")
	key, err := base64.RawURLEncoding.DecodeString(encoded)
	if err != nil {
		return nil, errors.Annotate(err, "decoding key").Err()
	}
	if len(key) == 0 {
		return nil, errors.New("empty key")
	}
	return key, nil
}

// SignURL returns rawURL with Expires, KeyName and Signature query parameters
// appended.
func SignURL(rawURL, keyName string, key []byte, expiration time.Time) (string, error) {
	if err := checkArgs(rawURL, keyName, key); err != nil {
		return "", err
	}
	sep := "?"
	if strings.Contains(rawURL, "?") {
		sep = "&"
	}
	toSign := fmt.Sprintf("%s%sExpires=%d&KeyName=%s", rawURL, sep, expiration.Unix(), keyName)
	return toSign + "&Signature=" + sign(toSign, key), nil
}

// SignURLPrefix signs every URL that starts with urlPrefix.
//
// The returned URL is urlPrefix with URLPrefix, Expires, KeyName and Signature
// query parameters appended. Any URL under the prefix carrying the same query
// parameters is accepted by Cloud CDN.
func SignURLPrefix(urlPrefix, keyName string, key []byte, expiration time.Time) (string, error) {
	policy, err := prefixPolicy(urlPrefix, keyName, key, expiration, "&")
	if err != nil {
		return "", err
	}
	sep := "?"
	if strings.Contains(urlPrefix, "?") {
		sep = "&"
	}
	return urlPrefix + sep + policy, nil
}

// SignCookie returns the value of the Cloud CDN signed cookie granting access
// to every URL under urlPrefix.
//
// Use it as `Set-Cookie: Cloud-CDN-Cookie=<value>; Path=/; ...`.
func SignCookie(urlPrefix, keyName string, key []byte, expiration time.Time) (string, error) {
	return prefixPolicy(urlPrefix, keyName, key, expiration, ":")
}

func prefixPolicy(urlPrefix, keyName string, key []byte, expiration time.Time, sep string) (string, error) {
	if err := checkArgs(urlPrefix, keyName, key); err != nil {
		return "", err
	}
	encodedPrefix := base64.URLEncoding.EncodeToString([]byte(urlPrefix))
	toSign := strings.Join([]string{
		"URLPrefix=" + encodedPrefix,
		fmt.Sprintf("Expires=%d", expiration.Unix()),
		"KeyName=" + keyName,
	}, sep)
	return toSign + sep + "Signature=" + sign(toSign, key), nil
}

func checkArgs(rawURL, keyName string, key []byte) error {
	switch {
	case rawURL == "":
		return errors.New("empty URL")
	case keyName == "":
		return errors.New("empty key name")
	case len(key) == 0:
		return errors.New("empty key")
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		return errors.Annotate(err, "bad URL %q", rawURL).Err()
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return errors.Reason("bad URL %q: want http or https scheme", rawURL).Err()
	}
	return nil
}

func sign(s string, key []byte) string {
	mac := hmac.New(sha1.New, key)
	mac.Write([]byte(s))
	return base64.URLEncoding.EncodeToString(mac.Sum(nil))
}
