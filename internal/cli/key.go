package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"walletkit/internal/hdkey"
	"walletkit/internal/inputs"
	"walletkit/pkg/appcfg"
)

func newKeyCmd(cfg *appcfg.Config) *cobra.Command {
	var (
		count   int
		outPath string
	)

	cmd := &cobra.Command{
		Use:   "key",
		Short: "Generate standalone BTC private keys (hex, WIF, legacy address)",
		Long: `Generate random secp256k1 private keys outside any mnemonic or derivation
path, printed as a private_hex/wif/address table. Without --out the table
goes to stdout.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if count <= 0 {
				return fmt.Errorf("count must be positive, got %d", count)
			}
			lines := make([]string, 0, count+1)
			lines = append(lines, "private_hex\twif\taddress")
			for i := 0; i < count; i++ {
				k, err := hdkey.GenerateKey()
				if err != nil {
					return fmt.Errorf("generate key: %w", err)
				}
				lines = append(lines, fmt.Sprintf("%s\t%s\t%s", k.PrivateHex, k.WIF, k.Address))
			}
			if outPath != "" {
				return inputs.WriteLines(outPath, lines)
			}
			for _, line := range lines {
				fmt.Fprintln(cmd.OutOrStdout(), line)
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&count, "count", "n", 1, "number of keys to generate")
	cmd.Flags().StringVarP(&outPath, "out", "o", "", "output file (default stdout)")
	return cmd
}
