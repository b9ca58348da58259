package explorer

import (
	"context"
	"fmt"
)

type blockcypherBalance struct {
	FinalBalance  int64 `json:"final_balance"`
	TotalReceived int64 `json:"total_received"`
	NTx           int64 `json:"n_tx"`
}

// Blockcypher fetches one address from api.blockcypher.com. The free tier
// allows 3 req/s and 200/hr, so callers pace the loop between addresses.
func (c *Client) Blockcypher(ctx context.Context, address string) (Result, error) {
	var data blockcypherBalance
	url := fmt.Sprintf("%s/v1/btc/main/addrs/%s/balance", c.BlockcypherBase, address)
	if err := c.getJSON(ctx, url, &data); err != nil {
		return Failed, err
	}
	return Result{
		BalanceSats:       data.FinalBalance,
		TotalReceivedSats: data.TotalReceived,
	}, nil
}
