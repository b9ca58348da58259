package explorer

import (
	"context"

	"walletkit/pkg/logx"
)

// API names accepted in a fallback order.
const (
	APIBlockcypher = "blockcypher"
	APIBlockchain  = "blockchain"
	APIBlockstream = "blockstream"
)

// AllFailed is the api_used value when every API in the order failed.
const AllFailed = "all_failed"

// FetchWithFallback tries each named API in order and returns the first
// non-negative balance together with the API that produced it. There is no
// per-API retry here: a failed call falls straight through to the next name.
func (c *Client) FetchWithFallback(ctx context.Context, address string, order []string) (Result, string) {
	for _, name := range order {
		var (
			res Result
			err error
		)
		switch name {
		case APIBlockcypher:
			res, err = c.Blockcypher(ctx, address)
		case APIBlockchain:
			res, err = c.Blockchain(ctx, address)
		case APIBlockstream:
			res, err = c.Blockstream(ctx, address)
		default:
			continue
		}
		if err != nil {
			logx.S().Debugw("api fetch failed", "api", name, "address", address, "err", err)
			continue
		}
		if res.BalanceSats >= 0 {
			return res, name
		}
	}
	return Failed, AllFailed
}
