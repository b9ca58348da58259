// Package encdec wraps raw ETH private keys into geth keystore JSON and back.
// Each run writes under its own dated directory so repeated runs never
// clobber earlier output.
package encdec

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"walletkit/internal/crypto"
	"walletkit/internal/inputs"
	"walletkit/internal/keystore"
	"walletkit/internal/logsink"
	"walletkit/pkg/logx"
)

// EncryptOptions controls an encryption run.
type EncryptOptions struct {
	InputPath string // one private-key hex per line, '#' comments allowed
	OutBase   string // e.g. "out"
	Password  string // required
	PassHint  string // optional, stored as hint.txt next to the output
}

// DecryptOptions controls a decryption run.
type DecryptOptions struct {
	InputPath string // all.jsonl or a single keystore .json
	OutBase   string
	Password  string
}

// EncryptKeys reads private keys and writes one keystore JSON per key:
//
//	out/encrypt/<DD.MM.YYYY>/encrypt_<HH-MM-SS>/all.jsonl
//	out/encrypt/.../files/<address>.json
func EncryptKeys(ctx context.Context, opt EncryptOptions) error {
	dir, err := logsink.MakeRunDirs(opt.OutBase, "encrypt")
	if err != nil {
		return err
	}
	_ = logsink.WriteHint(dir, opt.PassHint)
	app := logx.With("encrypt")

	keys, err := inputs.ReadSecrets(opt.InputPath)
	if err != nil {
		return err
	}

	filesDir := filepath.Join(dir, "files")
	if err := os.MkdirAll(filesDir, 0o755); err != nil {
		return fmt.Errorf("mkdir files: %w", err)
	}
	allPath := filepath.Join(dir, "all.jsonl")

	app.Infow("encrypt started", "input", opt.InputPath, "out", dir, "keys", len(keys))

	var okCnt, failCnt int
	start := time.Now()
	for _, raw := range keys {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		priv, perr := crypto.PrivFromHex(raw)
		if perr != nil {
			failCnt++
			app.Errorw("parse private key failed", "err", perr)
			continue
		}
		addr := crypto.AddressHex(priv)

		blob, kerr := crypto.KeystoreJSON(priv, opt.Password)
		if kerr != nil {
			failCnt++
			app.Errorw("keystore encrypt failed", "addr", addr, "err", kerr)
			continue
		}

		if err := keystore.AppendJSONL(allPath, blob); err != nil {
			failCnt++
			app.Errorw("append jsonl failed", "addr", addr, "err", err)
			continue
		}
		perWallet := filepath.Join(filesDir, strings.ToLower(strings.TrimPrefix(addr, "0x"))+".json")
		if werr := os.WriteFile(perWallet, blob, 0o600); werr != nil {
			failCnt++
			app.Errorw("write single keystore failed", "addr", addr, "err", werr)
			continue
		}

		okCnt++
		app.Infow("encrypted", "address", addr)
	}

	app.Infow("encrypt finished",
		"total", len(keys), "ok", okCnt, "failed", failCnt,
		"elapsed", time.Since(start).Round(time.Second))
	return nil
}

// DecryptKeystores reads keystore JSON (a .jsonl bundle or one .json file)
// and writes "address:private_hex" lines to out/decrypt/.../all.log.
func DecryptKeystores(ctx context.Context, opt DecryptOptions) error {
	dir, err := logsink.MakeRunDirs(opt.OutBase, "decrypt")
	if err != nil {
		return err
	}
	app := logx.With("decrypt")

	var blobs [][]byte
	if strings.HasSuffix(opt.InputPath, ".jsonl") {
		f, err := os.Open(opt.InputPath)
		if err != nil {
			return fmt.Errorf("open %q: %w", opt.InputPath, err)
		}
		sc := bufio.NewScanner(f)
		sc.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
		for sc.Scan() {
			line := strings.TrimSpace(sc.Text())
			if line != "" {
				blobs = append(blobs, []byte(line))
			}
		}
		scanErr := sc.Err()
		_ = f.Close()
		if scanErr != nil {
			return fmt.Errorf("scan %q: %w", opt.InputPath, scanErr)
		}
	} else {
		blob, err := os.ReadFile(opt.InputPath)
		if err != nil {
			return fmt.Errorf("read %q: %w", opt.InputPath, err)
		}
		blobs = append(blobs, blob)
	}

	app.Infow("decrypt started", "input", opt.InputPath, "out", dir, "keystores", len(blobs))

	var okCnt, failCnt int
	start := time.Now()
	for _, blob := range blobs {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		priv, derr := crypto.DecryptKeystoreJSON(blob, opt.Password)
		if derr != nil {
			failCnt++
			app.Errorw("decrypt failed", "err", derr)
			continue
		}
		addr := crypto.AddressHex(priv)
		if err := logsink.WriteRow(dir, "all", fmt.Sprintf("%s:%s", addr, crypto.PrivToHex(priv)), false); err != nil {
			return fmt.Errorf("write decrypted row: %w", err)
		}
		okCnt++
		app.Infow("decrypted", "address", addr)
	}

	app.Infow("decrypt finished",
		"total", len(blobs), "ok", okCnt, "failed", failCnt,
		"elapsed", time.Since(start).Round(time.Second))
	return nil
}
