package explorer

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/matryer/is"

	"walletkit/pkg/logx"
)

func TestMain(m *testing.M) {
	if err := logx.Init(logx.Config{Level: "error", ConsoleOnly: true}); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

func newTestClient(ts *httptest.Server) *Client {
	c := New(Options{Timeout: 2 * time.Second, UserAgent: "walletkit-test"})
	c.BlockstreamBase = ts.URL
	c.BlockchainBase = ts.URL
	c.BlockcypherBase = ts.URL
	return c
}

func TestBlockstream_BalanceMath(t *testing.T) {
	is := is.New(t)

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		is.Equal(r.URL.Path, "/address/1TestAddr")
		fmt.Fprint(w, `{
			"chain_stats":{"funded_txo_sum":150000,"spent_txo_sum":50000,"tx_count":7},
			"mempool_stats":{"funded_txo_sum":2000,"spent_txo_sum":500}
		}`)
	}))
	defer ts.Close()
	c := newTestClient(ts)

	res, err := c.Blockstream(context.Background(), "1TestAddr")
	is.NoErr(err)
	is.Equal(res.BalanceSats, int64(100000))       // funded - spent
	is.Equal(res.TotalReceivedSats, int64(150000)) // funded

	bal, err := c.BlockstreamBalance(context.Background(), "1TestAddr")
	is.NoErr(err)
	is.Equal(bal.ConfirmedSats, int64(100000))
	is.Equal(bal.MempoolSats, int64(1500))
	is.Equal(bal.TotalSats, int64(101500))

	info, err := c.BlockstreamInfo(context.Background(), "1TestAddr")
	is.NoErr(err)
	is.Equal(info.BalanceSats, int64(100000))
	is.Equal(info.TxCount, int64(7))
}

func TestBlockchain(t *testing.T) {
	is := is.New(t)

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		is.Equal(r.URL.Path, "/rawaddr/1TestAddr")
		is.Equal(r.URL.Query().Get("limit"), "0")
		fmt.Fprint(w, `{"final_balance":42,"total_received":100,"n_tx":3}`)
	}))
	defer ts.Close()

	res, err := newTestClient(ts).Blockchain(context.Background(), "1TestAddr")
	is.NoErr(err)
	is.Equal(res.BalanceSats, int64(42))
	is.Equal(res.TotalReceivedSats, int64(100))
}

func TestBlockcypher(t *testing.T) {
	is := is.New(t)

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		is.Equal(r.URL.Path, "/v1/btc/main/addrs/1TestAddr/balance")
		fmt.Fprint(w, `{"final_balance":7,"total_received":9}`)
	}))
	defer ts.Close()

	res, err := newTestClient(ts).Blockcypher(context.Background(), "1TestAddr")
	is.NoErr(err)
	is.Equal(res.BalanceSats, int64(7))
	is.Equal(res.TotalReceivedSats, int64(9))
}

func TestErrorsCollapseToSentinel(t *testing.T) {
	is := is.New(t)

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer ts.Close()
	c := newTestClient(ts)

	res, err := c.Blockchain(context.Background(), "1TestAddr")
	is.True(err != nil)
	is.Equal(res, Failed)

	res, err = c.Blockstream(context.Background(), "1TestAddr")
	is.True(err != nil)
	is.Equal(res, Failed)
}

func TestIsRateLimited(t *testing.T) {
	is := is.New(t)

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer ts.Close()

	_, err := newTestClient(ts).Blockstream(context.Background(), "1TestAddr")
	is.True(err != nil)
	is.True(IsRateLimited(err))
}

func TestFetchWithFallback_FirstSuccessWins(t *testing.T) {
	is := is.New(t)

	var blockcypherHits, blockchainHits int
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.URL.Path == "/v1/btc/main/addrs/1TestAddr/balance":
			blockcypherHits++
			http.Error(w, "down", http.StatusServiceUnavailable)
		case r.URL.Path == "/rawaddr/1TestAddr":
			blockchainHits++
			fmt.Fprint(w, `{"final_balance":55,"total_received":60}`)
		default:
			t.Errorf("unexpected request: %s", r.URL.Path)
		}
	}))
	defer ts.Close()

	order := []string{APIBlockcypher, APIBlockchain, APIBlockstream}
	res, apiUsed := newTestClient(ts).FetchWithFallback(context.Background(), "1TestAddr", order)
	is.Equal(apiUsed, APIBlockchain)
	is.Equal(res.BalanceSats, int64(55))
	is.Equal(blockcypherHits, 1)
	is.Equal(blockchainHits, 1)
}

func TestFetchWithFallback_AllFailed(t *testing.T) {
	is := is.New(t)

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusServiceUnavailable)
	}))
	defer ts.Close()

	order := []string{APIBlockcypher, APIBlockchain, APIBlockstream, "bogus-name"}
	res, apiUsed := newTestClient(ts).FetchWithFallback(context.Background(), "1TestAddr", order)
	is.Equal(apiUsed, AllFailed)
	is.Equal(res, Failed)
}
