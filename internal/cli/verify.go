package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"walletkit/internal/explorer"
	"walletkit/internal/inputs"
	"walletkit/internal/secret"
	"walletkit/pkg/appcfg"
	"walletkit/pkg/logx"
)

func newVerifyCmd(cfg *appcfg.Config) *cobra.Command {
	var (
		inputPath  string
		secretType string
		noAPI      bool
		rateDelay  float64
		retries    int
		timeout    int
		verbose    bool
	)

	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Detect secret types, derive addresses, optionally fetch balances",
		Long: `Read one secret per line (WIF, hex private key, extended key, mnemonic or
mini key), detect the type, derive the legacy BTC address and, unless
--no-api is set, look up balance and transaction count on blockstream.info.
Lines starting with '#' are skipped.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if verbose {
				if err := logx.Init(logx.Config{
					Level:                "debug",
					ConsoleOnly:          true,
					HideSecretsInConsole: cfg.HideSecretsInConsole,
				}); err != nil {
					return err
				}
			}

			secrets, err := inputs.ReadSecrets(inputPath)
			if err != nil {
				return err
			}

			var forced secret.Type
			if secretType != "auto" {
				forced, err = secret.Parse(secretType)
				if err != nil {
					return err
				}
			}

			client := newExplorerClient(cfg, timeout)
			ctx := withInterrupt(cmd.Context())
			app := logx.With("verify")

			for lineNo, s := range secrets {
				select {
				case <-ctx.Done():
					return ctx.Err()
				default:
				}

				typ := forced
				if secretType == "auto" {
					typ = secret.Detect(s)
				}

				address, err := secret.Address(s, typ)
				if err != nil {
					app.Warnw("secret could not be converted to address",
						"line", lineNo+1, "type", string(typ), "err", err)
					continue
				}

				if noAPI {
					app.Infow("verified", "line", lineNo+1, "type", string(typ),
						"secret", s, "address", address)
					continue
				}

				info, err := fetchInfoWithRetry(ctx, client, address, retries, rateDelay)
				if err != nil {
					app.Infow("verified", "line", lineNo+1, "type", string(typ),
						"secret", s, "address", address, "balance", "<error>")
					continue
				}
				app.Infow("verified", "line", lineNo+1, "type", string(typ),
					"secret", s, "address", address,
					"tx_count", info.TxCount, "balance", info.BalanceSats)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&inputPath, "input", "i", "potential_btc_keys.txt", "input file, one secret per line")
	cmd.Flags().StringVarP(&secretType, "secret-type", "t", "auto", "auto, WIF, classic, extended, mnemonic or mini")
	cmd.Flags().BoolVar(&noAPI, "no-api", false, "skip balance lookups")
	cmd.Flags().Float64Var(&rateDelay, "rate-delay", 1.0, "delay after each successful API call in seconds")
	cmd.Flags().IntVar(&retries, "retries", 3, "API attempts per address")
	cmd.Flags().IntVar(&timeout, "timeout", 10, "per-request timeout in seconds")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	return cmd
}

// fetchInfoWithRetry retries with doubling backoff starting at one second,
// and pauses rateDelay after a successful call to stay polite.
func fetchInfoWithRetry(ctx context.Context, client *explorer.Client, address string, retries int, rateDelay float64) (explorer.AddressInfo, error) {
	if retries <= 0 {
		retries = 3
	}
	backoff := time.Second
	var lastErr error
	for attempt := 1; attempt <= retries; attempt++ {
		info, err := client.BlockstreamInfo(ctx, address)
		if err == nil {
			select {
			case <-ctx.Done():
				return info, ctx.Err()
			case <-time.After(time.Duration(rateDelay * float64(time.Second))):
			}
			return info, nil
		}
		lastErr = err
		logx.S().Warnw("fetch address info failed",
			"attempt", attempt, "address", address, "err", err)
		if attempt < retries {
			select {
			case <-ctx.Done():
				return explorer.AddressInfo{}, ctx.Err()
			case <-time.After(backoff):
			}
			backoff *= 2
		}
	}
	return explorer.AddressInfo{}, fmt.Errorf("all attempts failed for %s: %w", address, lastErr)
}
