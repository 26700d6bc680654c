// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package sealed encrypts credential bundles to operator age keys.
//
// The admin service hands out a user's credential bundle (a zip with
// the rc file, certificates, and keys) as plain bytes. Writing that to
// disk in the clear leaks the user's secret key, so novaadmin can seal
// it to one or more age x25519 recipients instead. Sealed output is
// ASCII-armored age ("-----BEGIN AGE ENCRYPTED FILE-----") so it can be
// pasted into tickets or chat.
//
//   - [GenerateKeypair] creates a keypair; the private half lives in a
//     [secret.Buffer].
//   - [Seal] encrypts to age1... recipients.
//   - [Open] decrypts with a private key and returns the plaintext in a
//     [secret.Buffer].
package sealed
