// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package query

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"net/http"
	"strings"
	"time"

	"github.com/bureau-foundation/novaadmin/lib/secret"
)

// Signing parameter values.
const (
	SignatureMethod  = "HmacSHA256"
	SignatureVersion = "2"
	TimestampFormat  = "2006-01-02T15:04:05Z"
)

// Credentials identify the caller to the control plane.
type Credentials struct {
	AccessKey string
	// SecretKey signs requests. Whoever builds the Credentials owns the
	// buffer; a Client built from them takes ownership and closes it in
	// Close.
	SecretKey *secret.Buffer
}

// signedBody adds the signing parameters to params and returns the
// form body with the signature appended. params is modified.
func signedBody(endpoint Endpoint, credentials Credentials, action, version string, now time.Time, params Params) string {
	params.Set("Action", action)
	params.Set("AWSAccessKeyId", credentials.AccessKey)
	params.Set("SignatureMethod", SignatureMethod)
	params.Set("SignatureVersion", SignatureVersion)
	params.Set("Timestamp", now.UTC().Format(TimestampFormat))
	params.Set("Version", version)

	canonical := params.canonical()
	signature := sign(credentials.SecretKey, stringToSign(http.MethodPost, endpoint.Address(), endpoint.path(), canonical))
	return canonical + "&Signature=" + percentEncode(signature)
}

// stringToSign is the version 2 string: method, lower-case host,
// path, and canonical query, separated by newlines.
func stringToSign(method, host, path, canonical string) string {
	return method + "\n" + strings.ToLower(host) + "\n" + path + "\n" + canonical
}

func sign(secretKey *secret.Buffer, message string) string {
	mac := hmac.New(sha256.New, secretKey.Bytes())
	mac.Write([]byte(message))
	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}
