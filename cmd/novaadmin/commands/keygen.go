// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/novaadmin/cmd/novaadmin/cli"
	"github.com/bureau-foundation/novaadmin/lib/sealed"
	"github.com/bureau-foundation/novaadmin/lib/secret"
)

func (a *app) keygenCommand() *cli.Command {
	var params struct {
		Output string `flag:"output,o" desc:"write the identity to this file (mode 0600) instead of stdout"`
	}
	return &cli.Command{
		Name:    "keygen",
		Summary: "Generate an age keypair for sealed credential bundles",
		Usage:   "novaadmin keygen [--output file]",
		Description: `Generate an age X25519 identity. The public key (age1...) is what
"user credentials --seal-to" takes; the identity decrypts the bundle
with any age client.`,
		Flags: func() *pflag.FlagSet { return cli.FlagsFromParams("keygen", &params) },
		Run: func(_ context.Context, args []string) error {
			if len(args) != 0 {
				return fmt.Errorf("keygen takes no arguments")
			}
			keypair, err := sealed.GenerateKeypair()
			if err != nil {
				return err
			}
			defer keypair.Close()

			var identity bytes.Buffer
			fmt.Fprintf(&identity, "# created: %s\n", time.Now().UTC().Format(time.RFC3339))
			fmt.Fprintf(&identity, "# public key: %s\n", keypair.PublicKey)
			identity.Write(keypair.PrivateKey.Bytes())
			identity.WriteByte('\n')
			defer secret.Zero(identity.Bytes())

			if params.Output == "" || params.Output == "-" {
				_, err := a.stdout.Write(identity.Bytes())
				return err
			}
			if err := os.WriteFile(params.Output, identity.Bytes(), 0o600); err != nil {
				return fmt.Errorf("writing identity: %w", err)
			}
			fmt.Fprintf(a.stderr, "Public key: %s\n", keypair.PublicKey)
			return nil
		},
	}
}
