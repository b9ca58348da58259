package explorer

import (
	"context"
	"fmt"
)

type rawAddr struct {
	FinalBalance  int64 `json:"final_balance"`
	TotalReceived int64 `json:"total_received"`
	NTx           int64 `json:"n_tx"`
}

// Blockchain fetches one address from blockchain.info. limit=0 skips the
// transaction list, the balance fields are all this caller reads.
func (c *Client) Blockchain(ctx context.Context, address string) (Result, error) {
	var data rawAddr
	url := fmt.Sprintf("%s/rawaddr/%s?limit=0", c.BlockchainBase, address)
	if err := c.getJSON(ctx, url, &data); err != nil {
		return Failed, err
	}
	return Result{
		BalanceSats:       data.FinalBalance,
		TotalReceivedSats: data.TotalReceived,
	}, nil
}
