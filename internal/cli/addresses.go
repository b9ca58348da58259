package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"walletkit/internal/hdkey"
	"walletkit/internal/inputs"
	"walletkit/pkg/appcfg"
	"walletkit/pkg/logx"
)

func newAddressesCmd(cfg *appcfg.Config) *cobra.Command {
	var (
		inputPath  string
		outputPath string
		passphrase string
	)

	cmd := &cobra.Command{
		Use:   "addresses",
		Short: "Derive the first BIP44 BTC address of each mnemonic in a file",
		RunE: func(cmd *cobra.Command, args []string) error {
			mnemonics, err := inputs.ReadLines(inputPath)
			if err != nil {
				return err
			}

			lines := make([]string, 0, len(mnemonics))
			var failed int
			for i, mn := range mnemonics {
				d, err := hdkey.NewManager(mn, passphrase).Derive(hdkey.PurposeBIP44, 0, 0, 0)
				if err != nil {
					failed++
					lines = append(lines, fmt.Sprintf("ERROR at line %d: %v", i+1, err))
					continue
				}
				lines = append(lines, d.Address)
			}

			if err := inputs.WriteLines(outputPath, lines); err != nil {
				return err
			}
			logx.S().Infow("addresses written",
				"input", inputPath, "output", outputPath,
				"total", len(mnemonics), "failed", failed)
			return nil
		},
	}

	cmd.Flags().StringVarP(&inputPath, "input", "i", "mnemonics.txt", "file with one mnemonic per line")
	cmd.Flags().StringVarP(&outputPath, "output", "o", "btc_addresses.txt", "output file, one address per line")
	cmd.Flags().StringVar(&passphrase, "passphrase", "", "BIP39 passphrase")
	return cmd
}
