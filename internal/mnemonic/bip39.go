package mnemonic

import (
	"crypto/ecdsa"
	"fmt"

	hdwallet "github.com/miguelmota/go-ethereum-hdwallet"
	bip39 "github.com/tyler-smith/go-bip39"
)

// Account is one ETH account derived from a mnemonic under BIP44.
type Account struct {
	Mnemonic string
	Index    int
	Path     string
	Priv     *ecdsa.PrivateKey
	Address  string
}

// New generates a BIP39 mnemonic. strength is the entropy size in bits;
// 0 means 128 (12 words).
func New(strength int) (string, error) {
	if strength == 0 {
		strength = 128
	}
	entropy, err := bip39.NewEntropy(strength)
	if err != nil {
		return "", err
	}
	return bip39.NewMnemonic(entropy)
}

// Validate reports whether mn is a well-formed BIP39 mnemonic with a valid
// checksum.
func Validate(mn string) bool {
	return bip39.IsMnemonicValid(mn)
}

// Seed derives the BIP39 seed bytes for a mnemonic and optional passphrase.
func Seed(mn, passphrase string) []byte {
	return bip39.NewSeed(mn, passphrase)
}

// Derive returns n sequential ETH accounts starting at index start, under
// m/44'/60'/0'/0/i.
func Derive(mn, passphrase string, start, n int) ([]Account, error) {
	if n <= 0 {
		n = 1
	}
	w, err := hdwallet.NewFromSeed(Seed(mn, passphrase))
	if err != nil {
		return nil, err
	}
	out := make([]Account, 0, n)
	for i := start; i < start+n; i++ {
		pathStr := fmt.Sprintf("m/44'/60'/0'/0/%d", i)
		path := hdwallet.MustParseDerivationPath(pathStr)
		acct, err := w.Derive(path, true)
		if err != nil {
			return nil, err
		}
		addr, err := w.Address(acct)
		if err != nil {
			return nil, err
		}
		priv, err := w.PrivateKey(acct)
		if err != nil {
			return nil, err
		}
		out = append(out, Account{
			Mnemonic: mn,
			Index:    i,
			Path:     pathStr,
			Priv:     priv,
			Address:  addr.Hex(),
		})
	}
	return out, nil
}
