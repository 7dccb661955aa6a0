// Command hash-generator prints bcrypt hashes for the password_hash field of
// configured users.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"

	"github.com/miphreal/drf-tweaks/internal/service/auth"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var cost int
	cmd := &cobra.Command{
		Use:          "hash-generator <password>...",
		Short:        "Hash passwords for the auth.users configuration",
		Args:         cobra.MinimumNArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return writeHashes(cmd.OutOrStdout(), args, cost)
		},
	}
	cmd.Flags().IntVar(&cost, "cost", bcrypt.DefaultCost, "bcrypt cost")
	return cmd
}

func writeHashes(w io.Writer, passwords []string, cost int) error {
	for i, password := range passwords {
		hash, err := auth.HashPassword(password, cost)
		if err != nil {
			return fmt.Errorf("password %d: %w", i+1, err)
		}
		fmt.Fprintln(w, hash)
	}
	return nil
}
