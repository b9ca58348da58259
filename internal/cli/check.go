package cli

import (
	"time"

	"github.com/spf13/cobra"

	"walletkit/internal/checker"
	"walletkit/internal/inputs"
	"walletkit/pkg/appcfg"
	"walletkit/pkg/logx"
)

func newCheckCmd(cfg *appcfg.Config) *cobra.Command {
	var (
		inputPath    string
		addressesOut string
		balancesOut  string
		workers      int
		delay        float64
		limit        int
		retries      int
		timeout      int
	)

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Check BTC balances via the Blockstream API",
		Long: `Extract BTC addresses from a CSV key dump (or a plain address list), dump
them to a file and check each against blockstream.info. With --workers > 1 a
fixed pool issues concurrent requests; results land in completion order.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			addresses, err := inputs.ExtractAddresses(inputPath)
			if err != nil {
				return err
			}
			if len(addresses) == 0 {
				logx.S().Warnw("no addresses found", "input", inputPath)
				return nil
			}
			if err := inputs.WriteLines(addressesOut, addresses); err != nil {
				return err
			}
			logx.S().Infow("addresses extracted",
				"count", len(addresses), "addresses_out", addressesOut)

			client := newExplorerClient(cfg, timeout)
			rep := checker.NewReport(balancesOut, checker.HeaderBlockstream)
			_, err = checker.Run(withInterrupt(cmd.Context()), addresses,
				checker.BlockstreamFetch(client, retries), rep, checker.Options{
					Delay:         time.Duration(delay * float64(time.Second)),
					Limit:         limit,
					Workers:       workers,
					ProgressEvery: 50,
				})
			return err
		},
	}

	cmd.Flags().StringVarP(&inputPath, "input", "i", "keys.csv", "input CSV or address list")
	cmd.Flags().StringVar(&addressesOut, "addresses-out", "addresses_only.txt", "extracted address list")
	cmd.Flags().StringVarP(&balancesOut, "balances-out", "o", "btc_balances.csv", "output CSV")
	cmd.Flags().IntVar(&workers, "workers", 1, "parallel workers (1 = sequential)")
	cmd.Flags().Float64Var(&delay, "delay", 1.0, "delay between requests in seconds (sequential mode)")
	cmd.Flags().IntVar(&limit, "limit", 0, "max addresses to check (0 = all)")
	cmd.Flags().IntVar(&retries, "retries", 7, "attempts per address")
	cmd.Flags().IntVar(&timeout, "timeout", 40, "per-request timeout in seconds")
	return cmd
}

func newCheckMultiCmd(cfg *appcfg.Config) *cobra.Command {
	var (
		inputPath  string
		outputPath string
		delay      float64
		limit      int
		order      []string
	)

	cmd := &cobra.Command{
		Use:   "check-multi",
		Short: "Check BTC balances with multi-API fallback",
		Long: `Check each address against Blockcypher, Blockchain.com and Blockstream in
order, stopping at the first API that answers. Long delays between addresses
keep the run inside every API's free rate limit.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			addresses, err := inputs.ExtractAddresses(inputPath)
			if err != nil {
				return err
			}
			if len(addresses) == 0 {
				logx.S().Warnw("no addresses found", "input", inputPath)
				return nil
			}
			logx.S().Infow("addresses extracted", "count", len(addresses),
				"order", order,
				"estimated_hours", float64(len(addresses))*delay/3600)

			client := newExplorerClient(cfg, 0)
			rep := checker.NewReport(outputPath, checker.HeaderMulti)
			_, err = checker.Run(withInterrupt(cmd.Context()), addresses,
				checker.MultiFetch(client, order), rep, checker.Options{
					Delay:         time.Duration(delay * float64(time.Second)),
					Limit:         limit,
					ProgressEvery: 10,
				})
			return err
		},
	}

	cmd.Flags().StringVarP(&inputPath, "input", "i", "keys.csv", "input CSV or address list")
	cmd.Flags().StringVarP(&outputPath, "output", "o", "btc_balances_multi.csv", "output CSV")
	cmd.Flags().Float64Var(&delay, "delay", cfg.Explorer.DelaySeconds, "delay between addresses in seconds")
	cmd.Flags().IntVar(&limit, "limit", 0, "max addresses to check (0 = all)")
	cmd.Flags().StringSliceVar(&order, "order", cfg.Explorer.Order, "API fallback order")
	return cmd
}

func newCheckBlockchainCmd(cfg *appcfg.Config) *cobra.Command {
	var (
		inputPath  string
		outputPath string
		delay      float64
		limit      int
	)

	cmd := &cobra.Command{
		Use:   "check-blockchain",
		Short: "Check BTC balances via the Blockchain.com API",
		RunE: func(cmd *cobra.Command, args []string) error {
			addresses, err := inputs.ExtractAddresses(inputPath)
			if err != nil {
				return err
			}
			if len(addresses) == 0 {
				logx.S().Warnw("no addresses found", "input", inputPath)
				return nil
			}

			client := newExplorerClient(cfg, 20)
			rep := checker.NewReport(outputPath, checker.HeaderBlockchain)
			_, err = checker.Run(withInterrupt(cmd.Context()), addresses,
				checker.BlockchainFetch(client), rep, checker.Options{
					Delay:         time.Duration(delay * float64(time.Second)),
					Limit:         limit,
					ProgressEvery: 50,
				})
			return err
		},
	}

	cmd.Flags().StringVarP(&inputPath, "input", "i", "keys.csv", "input CSV or address list")
	cmd.Flags().StringVarP(&outputPath, "output", "o", "btc_balances_blockchain.csv", "output CSV")
	cmd.Flags().Float64Var(&delay, "delay", 0.3, "delay between requests in seconds")
	cmd.Flags().IntVar(&limit, "limit", 0, "max addresses to check (0 = all)")
	return cmd
}
