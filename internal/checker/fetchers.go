package checker

import (
	"context"
	"fmt"
	"strconv"

	"walletkit/internal/explorer"
	"walletkit/pkg/logx"
)

// HeaderBlockstream is the schema written by the single-API checker.
var HeaderBlockstream = []string{"address", "confirmed_sats", "mempool_sats", "total_sats", "total_btc"}

// HeaderMulti is the schema written by the multi-API fallback checker.
var HeaderMulti = []string{"address", "balance_sats", "total_received_sats", "balance_btc", "api_used"}

// HeaderBlockchain is the schema written by the blockchain.com checker.
var HeaderBlockchain = []string{"address", "balance_sats", "total_received_sats", "balance_btc"}

// BlockstreamFetch looks up confirmed and mempool balances on Blockstream,
// retrying with capped backoff. A row of -1 values records a failure.
func BlockstreamFetch(c *explorer.Client, retries int) FetchFunc {
	return func(ctx context.Context, addr string) Record {
		bal, err := c.BlockstreamBalanceRetry(ctx, addr, retries)
		if err != nil {
			logx.S().Warnw("fetch failed", "address", addr, "err", err)
			return Record{
				Address:     addr,
				Row:         []string{addr, "-1", "-1", "-1", "-1.00000000"},
				BalanceSats: -1,
			}
		}
		return Record{
			Address: addr,
			Row: []string{
				addr,
				strconv.FormatInt(bal.ConfirmedSats, 10),
				strconv.FormatInt(bal.MempoolSats, 10),
				strconv.FormatInt(bal.TotalSats, 10),
				fmt.Sprintf("%.8f", float64(bal.TotalSats)/1e8),
			},
			BalanceSats: bal.TotalSats,
		}
	}
}

// MultiFetch tries the named APIs in order per address; the api_used column
// records which one answered, or all_failed.
func MultiFetch(c *explorer.Client, order []string) FetchFunc {
	return func(ctx context.Context, addr string) Record {
		res, apiUsed := c.FetchWithFallback(ctx, addr, order)
		btcVal := 0.0
		if res.BalanceSats >= 0 {
			btcVal = float64(res.BalanceSats) / 1e8
		}
		return Record{
			Address: addr,
			Row: []string{
				addr,
				strconv.FormatInt(res.BalanceSats, 10),
				strconv.FormatInt(res.TotalReceivedSats, 10),
				fmt.Sprintf("%.8f", btcVal),
				apiUsed,
			},
			BalanceSats: res.BalanceSats,
		}
	}
}

// BlockchainFetch looks up blockchain.com only, no retry, sentinel on error.
func BlockchainFetch(c *explorer.Client) FetchFunc {
	return func(ctx context.Context, addr string) Record {
		res, err := c.Blockchain(ctx, addr)
		if err != nil {
			logx.S().Warnw("fetch failed", "address", addr, "err", err)
			res = explorer.Failed
		}
		btcVal := 0.0
		if res.BalanceSats >= 0 {
			btcVal = float64(res.BalanceSats) / 1e8
		}
		return Record{
			Address: addr,
			Row: []string{
				addr,
				strconv.FormatInt(res.BalanceSats, 10),
				strconv.FormatInt(res.TotalReceivedSats, 10),
				fmt.Sprintf("%.8f", btcVal),
			},
			BalanceSats: res.BalanceSats,
		}
	}
}
