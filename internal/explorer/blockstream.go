package explorer

import (
	"context"
	"fmt"
	"time"

	"walletkit/pkg/logx"
)

type blockstreamStats struct {
	FundedTxoSum int64 `json:"funded_txo_sum"`
	SpentTxoSum  int64 `json:"spent_txo_sum"`
	TxCount      int64 `json:"tx_count"`
}

type blockstreamAddress struct {
	ChainStats   blockstreamStats `json:"chain_stats"`
	MempoolStats blockstreamStats `json:"mempool_stats"`
}

// Balance is the confirmed/mempool split Blockstream reports for one address.
type Balance struct {
	ConfirmedSats int64
	MempoolSats   int64
	TotalSats     int64
}

// Blockstream fetches one address from blockstream.info. BalanceSats is the
// confirmed funded−spent sum; TotalReceivedSats is the funded sum.
func (c *Client) Blockstream(ctx context.Context, address string) (Result, error) {
	var data blockstreamAddress
	url := fmt.Sprintf("%s/address/%s", c.BlockstreamBase, address)
	if err := c.getJSON(ctx, url, &data); err != nil {
		return Failed, err
	}
	return Result{
		BalanceSats:       data.ChainStats.FundedTxoSum - data.ChainStats.SpentTxoSum,
		TotalReceivedSats: data.ChainStats.FundedTxoSum,
	}, nil
}

// AddressInfo is the confirmed balance and transaction count of an address.
type AddressInfo struct {
	BalanceSats int64
	TxCount     int64
}

// BlockstreamInfo returns the confirmed balance and transaction count.
func (c *Client) BlockstreamInfo(ctx context.Context, address string) (AddressInfo, error) {
	var data blockstreamAddress
	url := fmt.Sprintf("%s/address/%s", c.BlockstreamBase, address)
	if err := c.getJSON(ctx, url, &data); err != nil {
		return AddressInfo{}, err
	}
	return AddressInfo{
		BalanceSats: data.ChainStats.FundedTxoSum - data.ChainStats.SpentTxoSum,
		TxCount:     data.ChainStats.TxCount,
	}, nil
}

// BlockstreamBalance returns the confirmed balance plus the mempool delta.
func (c *Client) BlockstreamBalance(ctx context.Context, address string) (Balance, error) {
	var data blockstreamAddress
	url := fmt.Sprintf("%s/address/%s", c.BlockstreamBase, address)
	if err := c.getJSON(ctx, url, &data); err != nil {
		return Balance{}, err
	}
	confirmed := data.ChainStats.FundedTxoSum - data.ChainStats.SpentTxoSum
	mempool := data.MempoolStats.FundedTxoSum - data.MempoolStats.SpentTxoSum
	return Balance{
		ConfirmedSats: confirmed,
		MempoolSats:   mempool,
		TotalSats:     confirmed + mempool,
	}, nil
}

// BlockstreamBalanceRetry retries BlockstreamBalance with capped backoff:
// HTTP 429 sleeps 10·2^attempt seconds capped at 120, anything else sleeps
// 3·(attempt+1) seconds capped at 20.
func (c *Client) BlockstreamBalanceRetry(ctx context.Context, address string, retries int) (Balance, error) {
	if retries <= 0 {
		retries = 7
	}
	var lastErr error
	for attempt := 0; attempt < retries; attempt++ {
		bal, err := c.BlockstreamBalance(ctx, address)
		if err == nil {
			return bal, nil
		}
		lastErr = err

		var sleep time.Duration
		if IsRateLimited(err) {
			sleep = time.Duration(min(10<<attempt, 120)) * time.Second
		} else {
			sleep = time.Duration(min(3*(attempt+1), 20)) * time.Second
		}
		logx.S().Warnw("blockstream fetch failed",
			"address", address, "attempt", attempt+1, "retry_in", sleep, "err", err)

		select {
		case <-ctx.Done():
			return Balance{}, ctx.Err()
		case <-time.After(sleep):
		}
	}
	return Balance{}, fmt.Errorf("fetch %s: %w", address, lastErr)
}
