package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"walletkit/internal/crypto"
	"walletkit/internal/hdkey"
	"walletkit/internal/mnemonic"
	"walletkit/pkg/appcfg"
	"walletkit/pkg/logx"
)

type keyInfo struct {
	Path       string `json:"path"`
	Address    string `json:"address"`
	PrivateHex string `json:"private_hex"`
	WIF        string `json:"wif,omitempty"`
	PublicHex  string `json:"pub_hex,omitempty"`
}

type deriveEntry struct {
	Index int     `json:"index"`
	BIP44 keyInfo `json:"bip44"`
	BIP49 keyInfo `json:"bip49"`
	BIP84 keyInfo `json:"bip84"`
	ETH   keyInfo `json:"eth"`
}

func newDeriveCmd(cfg *appcfg.Config) *cobra.Command {
	var (
		mnemonicStr  string
		mnemonicFile string
		passphrase   string
		index        int
		count        int
		account      uint32
		change       uint32
		asJSON       bool
	)

	cmd := &cobra.Command{
		Use:   "derive",
		Short: "Derive BTC (BIP44/49/84) and ETH addresses from a mnemonic",
		Long: `Derive sequential addresses from a BIP39 mnemonic: legacy P2PKH (BIP44),
nested SegWit (BIP49), native SegWit (BIP84) and the ETH BIP44 account.
Without --mnemonic or --mnemonic-file the mnemonic is read from a hidden
terminal prompt.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			mn, err := loadMnemonic(mnemonicStr, mnemonicFile)
			if err != nil {
				return err
			}
			if mn == "" {
				return fmt.Errorf("no mnemonic provided")
			}
			if !mnemonic.Validate(mn) {
				logx.S().Warnw("mnemonic failed BIP39 checksum validation, deriving anyway")
			}
			if change > 1 {
				return fmt.Errorf("change must be 0 (external) or 1 (internal)")
			}

			mgr := hdkey.NewManager(mn, passphrase)
			entries := make([]deriveEntry, 0, count)
			for i := index; i < index+count; i++ {
				entry := deriveEntry{Index: i}
				for _, p := range []struct {
					purpose hdkey.Purpose
					dst     *keyInfo
				}{
					{hdkey.PurposeBIP44, &entry.BIP44},
					{hdkey.PurposeBIP49, &entry.BIP49},
					{hdkey.PurposeBIP84, &entry.BIP84},
				} {
					d, err := mgr.Derive(p.purpose, account, change, uint32(i))
					if err != nil {
						return fmt.Errorf("derive index %d: %w", i, err)
					}
					*p.dst = keyInfo{
						Path:       d.Path,
						Address:    d.Address,
						PrivateHex: d.PrivateHex,
						WIF:        d.WIF,
						PublicHex:  d.PublicHex,
					}
				}

				accts, err := mnemonic.Derive(mn, passphrase, i, 1)
				if err != nil {
					return fmt.Errorf("derive eth index %d: %w", i, err)
				}
				entry.ETH = keyInfo{
					Path:       accts[0].Path,
					Address:    accts[0].Address,
					PrivateHex: crypto.PrivToHex(accts[0].Priv),
				}
				entries = append(entries, entry)
			}

			if asJSON {
				b, err := json.MarshalIndent(entries, "", "  ")
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), string(b))
				return nil
			}
			printEntries(cmd, entries)
			return nil
		},
	}

	cmd.Flags().StringVar(&mnemonicStr, "mnemonic", "", "mnemonic string (may leak via shell history and process lists)")
	cmd.Flags().StringVar(&mnemonicFile, "mnemonic-file", "", "path to a file containing the mnemonic")
	cmd.Flags().StringVar(&passphrase, "passphrase", "", "BIP39 passphrase")
	cmd.Flags().IntVar(&index, "index", 0, "first address index")
	cmd.Flags().IntVar(&count, "count", 1, "number of sequential addresses")
	cmd.Flags().Uint32Var(&account, "account", 0, "account index")
	cmd.Flags().Uint32Var(&change, "change", 0, "change chain (0 external, 1 internal)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "output indented JSON")
	return cmd
}

func loadMnemonic(flag, file string) (string, error) {
	if file != "" {
		b, err := os.ReadFile(file)
		if err != nil {
			return "", fmt.Errorf("read mnemonic file: %w", err)
		}
		return strings.TrimSpace(string(b)), nil
	}
	if flag != "" {
		logx.S().Warnw("passing the mnemonic on the command line may be insecure")
		return strings.TrimSpace(flag), nil
	}
	return promptHidden("Enter mnemonic (hidden)")
}

func printEntries(cmd *cobra.Command, entries []deriveEntry) {
	out := cmd.OutOrStdout()
	for _, e := range entries {
		fmt.Fprintf(out, "Index: %d\n", e.Index)
		for _, kv := range []struct {
			name string
			info keyInfo
		}{
			{"bip44", e.BIP44}, {"bip49", e.BIP49}, {"bip84", e.BIP84}, {"eth", e.ETH},
		} {
			fmt.Fprintf(out, "  %s:\n", kv.name)
			fmt.Fprintf(out, "    path: %s\n", kv.info.Path)
			fmt.Fprintf(out, "    address: %s\n", kv.info.Address)
			fmt.Fprintf(out, "    private_hex: %s\n", kv.info.PrivateHex)
			if kv.info.WIF != "" {
				fmt.Fprintf(out, "    wif: %s\n", kv.info.WIF)
			}
		}
		fmt.Fprintln(out)
	}
}
