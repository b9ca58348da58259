package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"walletkit/internal/ops/encdec"
	"walletkit/pkg/appcfg"
)

func newEncryptCmd(cfg *appcfg.Config) *cobra.Command {
	var (
		inputPath string
		outBase   string
		password  string
		hint      string
	)

	cmd := &cobra.Command{
		Use:   "encrypt",
		Short: "Encrypt raw ETH private keys into geth keystore JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			if password == "" {
				var err error
				password, err = promptHidden("Keystore password")
				if err != nil {
					return err
				}
				if password == "" {
					return fmt.Errorf("empty keystore password")
				}
			}
			return encdec.EncryptKeys(withInterrupt(cmd.Context()), encdec.EncryptOptions{
				InputPath: inputPath,
				OutBase:   outBase,
				Password:  password,
				PassHint:  hint,
			})
		},
	}

	cmd.Flags().StringVarP(&inputPath, "input", "i", "privates.txt", "file with one private-key hex per line")
	cmd.Flags().StringVar(&outBase, "out", "out", "base directory for run output")
	cmd.Flags().StringVar(&password, "password", "", "keystore password (prompted when empty)")
	cmd.Flags().StringVar(&hint, "hint", "", "optional password hint saved next to the output")
	return cmd
}

func newDecryptCmd(cfg *appcfg.Config) *cobra.Command {
	var (
		inputPath string
		outBase   string
		password  string
	)

	cmd := &cobra.Command{
		Use:   "decrypt",
		Short: "Decrypt geth keystore JSON back to raw private keys",
		RunE: func(cmd *cobra.Command, args []string) error {
			if password == "" {
				var err error
				password, err = promptHidden("Keystore password")
				if err != nil {
					return err
				}
			}
			return encdec.DecryptKeystores(withInterrupt(cmd.Context()), encdec.DecryptOptions{
				InputPath: inputPath,
				OutBase:   outBase,
				Password:  password,
			})
		},
	}

	cmd.Flags().StringVarP(&inputPath, "input", "i", "all.jsonl", "keystore .jsonl bundle or single .json file")
	cmd.Flags().StringVar(&outBase, "out", "out", "base directory for run output")
	cmd.Flags().StringVar(&password, "password", "", "keystore password (prompted when empty)")
	return cmd
}
