// Package secret classifies raw wallet secrets by shape and derives the
// legacy BTC address for each supported kind. Detection is heuristic: first
// matching rule wins, misclassification yields an error at derivation time,
// never a panic.
package secret

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	btcec "github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/btcutil/hdkeychain"
	"github.com/btcsuite/btcd/chaincfg"

	"walletkit/internal/hdkey"
)

// Type is the detected shape of a secret string.
type Type string

const (
	TypeUnknown  Type = "unknown"
	TypeMnemonic Type = "mnemonic"
	TypeExtended Type = "extended"
	TypeWIF      Type = "WIF"
	TypeClassic  Type = "classic"
	TypeMini     Type = "mini"
)

// ErrUnknownType is returned when a secret cannot be classified.
var ErrUnknownType = errors.New("unknown secret type")

// Detect classifies a secret string with ordered heuristics. Mainnet WIF is
// 51 characters uncompressed (prefix 5) or 52 compressed (prefix K/L).
func Detect(s string) Type {
	s = strings.TrimSpace(s)
	if s == "" {
		return TypeUnknown
	}
	if strings.Contains(s, " ") {
		return TypeMnemonic
	}
	if strings.HasPrefix(s, "xprv") || strings.HasPrefix(s, "xpub") ||
		strings.HasPrefix(s, "tprv") || strings.HasPrefix(s, "tpub") {
		return TypeExtended
	}
	if (s[0] == '5' || s[0] == 'K' || s[0] == 'L') && (len(s) == 51 || len(s) == 52) {
		return TypeWIF
	}
	if len(s) == 64 && isHex(s) {
		return TypeClassic
	}
	if s[0] == 'S' {
		// mini private keys start with S
		return TypeMini
	}
	return TypeUnknown
}

// Parse resolves "auto" to a detected type and validates explicit ones.
func Parse(name string) (Type, error) {
	switch Type(name) {
	case TypeWIF, TypeClassic, TypeExtended, TypeMnemonic, TypeMini:
		return Type(name), nil
	default:
		return TypeUnknown, fmt.Errorf("unsupported secret type: %q", name)
	}
}

// Address derives the mainnet P2PKH address for a secret of the given type.
// On failure it returns an empty address and the cause.
func Address(s string, t Type) (string, error) {
	s = strings.TrimSpace(s)
	switch t {
	case TypeWIF:
		wif, err := btcutil.DecodeWIF(s)
		if err != nil {
			return "", fmt.Errorf("decode WIF: %w", err)
		}
		return hdkey.P2PKHAddress(wif.SerializePubKey())

	case TypeClassic:
		b, err := hex.DecodeString(s)
		if err != nil || len(b) != 32 {
			return "", fmt.Errorf("not a 32-byte hex private key")
		}
		priv, _ := btcec.PrivKeyFromBytes(b)
		return hdkey.P2PKHAddress(priv.PubKey().SerializeCompressed())

	case TypeExtended:
		key, err := hdkeychain.NewKeyFromString(s)
		if err != nil {
			return "", fmt.Errorf("parse extended key: %w", err)
		}
		// tprv/tpub carry testnet version bytes
		params := &chaincfg.MainNetParams
		if strings.HasPrefix(s, "t") {
			params = &chaincfg.TestNet3Params
		}
		addr, err := key.Address(params)
		if err != nil {
			return "", err
		}
		return addr.EncodeAddress(), nil

	case TypeMnemonic:
		d, err := hdkey.NewManager(s, "").Derive(hdkey.PurposeBIP44, 0, 0, 0)
		if err != nil {
			return "", err
		}
		return d.Address, nil

	case TypeMini:
		// mini private key: the secret's SHA256 is the raw key; mini keys
		// predate compressed pubkeys, so the address uses the uncompressed form
		sum := sha256.Sum256([]byte(s))
		priv, _ := btcec.PrivKeyFromBytes(sum[:])
		return hdkey.P2PKHAddress(priv.PubKey().SerializeUncompressed())

	default:
		return "", ErrUnknownType
	}
}

func isHex(s string) bool {
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= '0' && c <= '9', c >= 'a' && c <= 'f', c >= 'A' && c <= 'F':
		default:
			return false
		}
	}
	return true
}
