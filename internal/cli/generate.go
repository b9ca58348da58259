package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"walletkit/internal/generator"
	"walletkit/pkg/appcfg"
)

func newGenerateCmd(cfg *appcfg.Config) *cobra.Command {
	var (
		count      int
		words      int
		passphrase string
		format     string
		outPath    string
		workers    int
		encrypt    bool
		password   string
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate BIP39 mnemonics with BTC and ETH keys",
		Long: `Generate N random BIP39 mnemonics and derive the first BIP44 BTC and ETH
key pair of each. Text format writes one block per mnemonic; tsv writes the
mnemonic/private_hex/wif/address table.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			strength, err := wordsToStrength(words)
			if err != nil {
				return err
			}
			if encrypt && password == "" {
				password, err = promptHidden("Keystore password")
				if err != nil {
					return err
				}
				if password == "" {
					return fmt.Errorf("empty keystore password")
				}
			}
			if workers <= 0 {
				workers = cfg.Workers
			}
			return generator.Run(withInterrupt(cmd.Context()), generator.Options{
				Count:            count,
				WordsStrength:    strength,
				Passphrase:       passphrase,
				Format:           generator.Format(format),
				OutPath:          outPath,
				Encrypt:          encrypt,
				KeystorePassword: password,
				Workers:          workers,
			})
		},
	}

	cmd.Flags().IntVarP(&count, "count", "n", 1000, "number of mnemonics to generate")
	cmd.Flags().IntVar(&words, "words", 12, "mnemonic length (12, 15, 18, 21 or 24 words)")
	cmd.Flags().StringVar(&passphrase, "passphrase", "", "BIP39 passphrase")
	cmd.Flags().StringVar(&format, "format", string(generator.FormatText), "output format: text or tsv")
	cmd.Flags().StringVarP(&outPath, "out", "o", "generated_wallets.txt", "output file")
	cmd.Flags().IntVar(&workers, "workers", 0, "worker goroutines (0 = config default)")
	cmd.Flags().BoolVar(&encrypt, "encrypt", false, "write geth keystore JSON per ETH key")
	cmd.Flags().StringVar(&password, "password", "", "keystore password (prompted when empty)")
	return cmd
}

func wordsToStrength(words int) (int, error) {
	switch words {
	case 12, 15, 18, 21, 24:
		return words * 32 / 3, nil
	default:
		return 0, fmt.Errorf("invalid word count %d (must be 12, 15, 18, 21 or 24)", words)
	}
}
