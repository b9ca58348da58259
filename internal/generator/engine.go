// Package generator bulk-produces BIP39 mnemonics and the first BTC (BIP44)
// and ETH (BIP44) key pair of each. A fixed worker pool generates, a single
// writer goroutine appends to the output file, so rows land in completion
// order.
package generator

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"walletkit/internal/crypto"
	"walletkit/internal/hdkey"
	"walletkit/internal/keystore"
	"walletkit/internal/mnemonic"
	"walletkit/pkg/logx"
)

type walletEvent struct {
	Mnemonic string

	BTCAddress string
	BTCPriv    string
	BTCWIF     string

	ETHAddress string
	ETHPriv    string

	KsJSON []byte
}

func Run(ctx context.Context, opt Options) error {
	if opt.Count <= 0 {
		return fmt.Errorf("count must be positive, got %d", opt.Count)
	}
	if opt.Workers < 1 {
		opt.Workers = 1
	}
	if opt.Format == "" {
		opt.Format = FormatText
	}

	out, err := os.Create(opt.OutPath)
	if err != nil {
		return fmt.Errorf("create output %q: %w", opt.OutPath, err)
	}
	defer out.Close()
	w := bufio.NewWriter(out)

	logx.S().Infow("generation started",
		"count", opt.Count,
		"format", string(opt.Format),
		"workers", opt.Workers,
		"encrypt", opt.Encrypt,
		"out", opt.OutPath,
	)

	if opt.Format == FormatTSV {
		if _, err := fmt.Fprintln(w, "mnemonic\tprivate_hex\twif\taddress"); err != nil {
			return err
		}
	}

	start := time.Now()
	parent := ctx
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	events := make(chan walletEvent, opt.Workers*4)
	ksPath := opt.OutPath + ".keystore.jsonl"

	var written uint64
	writerDone := make(chan struct{})
	var writeErr error
	go func() {
		defer close(writerDone)
		for ev := range events {
			var err error
			switch opt.Format {
			case FormatTSV:
				_, err = fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
					ev.Mnemonic, ev.BTCPriv, ev.BTCWIF, ev.BTCAddress)
			default:
				_, err = fmt.Fprintf(w, "%s\nBTC: %s | %s\nETH: %s | %s\n---\n",
					ev.Mnemonic, ev.BTCAddress, ev.BTCPriv, ev.ETHAddress, ev.ETHPriv)
			}
			if err != nil {
				writeErr = err
				cancel()
				return
			}
			if len(ev.KsJSON) > 0 {
				if err := keystore.AppendJSONL(ksPath, ev.KsJSON); err != nil {
					logx.S().Errorw("keystore append failed", "addr", ev.ETHAddress, "err", err)
				}
			}
			atomic.AddUint64(&written, 1)
		}
	}()

	statusDone := make(chan struct{})
	go func() {
		defer close(statusDone)
		ticker := time.NewTicker(10 * time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case now := <-ticker.C:
				n := atomic.LoadUint64(&written)
				elapsed := now.Sub(start)
				rate := 0.0
				if elapsed > 0 {
					rate = float64(n) / elapsed.Seconds()
				}
				logx.S().Infow("progress",
					"generated", n,
					"total", opt.Count,
					"rate_per_sec", fmt.Sprintf("%.1f", rate),
				)
			}
		}
	}()

	var claimed int64
	var wg sync.WaitGroup
	wg.Add(opt.Workers)
	for i := 0; i < opt.Workers; i++ {
		go func() {
			defer wg.Done()
			worker(ctx, opt, &claimed, events)
		}()
	}

	wg.Wait()
	close(events)
	<-writerDone
	cancel()
	<-statusDone

	if writeErr != nil {
		return fmt.Errorf("write output: %w", writeErr)
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("flush output: %w", err)
	}
	logx.S().Infow("generation done",
		"generated", atomic.LoadUint64(&written),
		"elapsed", time.Since(start).Round(time.Second),
	)
	return parent.Err()
}

func worker(ctx context.Context, opt Options, claimed *int64, out chan<- walletEvent) {
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}
		if atomic.AddInt64(claimed, 1) > int64(opt.Count) {
			return
		}

		ev, err := generateOne(opt)
		if err != nil {
			logx.S().Errorw("generate failed", "err", err)
			atomic.AddInt64(claimed, -1)
			continue
		}

		select {
		case <-ctx.Done():
			return
		case out <- ev:
		}
	}
}

func generateOne(opt Options) (walletEvent, error) {
	mn, err := mnemonic.New(opt.WordsStrength)
	if err != nil {
		return walletEvent{}, fmt.Errorf("new mnemonic: %w", err)
	}

	btcKey, err := hdkey.NewManager(mn, opt.Passphrase).Derive(hdkey.PurposeBIP44, 0, 0, 0)
	if err != nil {
		return walletEvent{}, fmt.Errorf("derive btc: %w", err)
	}

	ethAccts, err := mnemonic.Derive(mn, opt.Passphrase, 0, 1)
	if err != nil {
		return walletEvent{}, fmt.Errorf("derive eth: %w", err)
	}
	eth := ethAccts[0]

	ev := walletEvent{
		Mnemonic:   mn,
		BTCAddress: btcKey.Address,
		BTCPriv:    btcKey.PrivateHex,
		BTCWIF:     btcKey.WIF,
		ETHAddress: eth.Address,
		ETHPriv:    crypto.PrivToHex(eth.Priv),
	}

	if opt.Encrypt {
		blob, err := crypto.KeystoreJSON(eth.Priv, opt.KeystorePassword)
		if err != nil {
			return walletEvent{}, fmt.Errorf("keystore encrypt: %w", err)
		}
		ev.KsJSON = blob
	}
	return ev, nil
}
