package hdkey

import (
	"encoding/hex"
	"strings"
	"testing"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/matryer/is"
)

// BIP44/49/84 first external addresses for the all-abandon test mnemonic,
// as published with the BIP84 reference vectors.
const testMnemonic = "abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon about"

func TestDerive_KnownVectors(t *testing.T) {
	is := is.New(t)
	mgr := NewManager(testMnemonic, "")

	d44, err := mgr.Derive(PurposeBIP44, 0, 0, 0)
	is.NoErr(err)
	is.Equal(d44.Path, "m/44'/0'/0'/0/0")
	is.Equal(d44.Address, "1LqBGSKuX5yYUonjxT5qGfpUsXKYYWeabA")

	d49, err := mgr.Derive(PurposeBIP49, 0, 0, 0)
	is.NoErr(err)
	is.Equal(d49.Path, "m/49'/0'/0'/0/0")
	is.Equal(d49.Address, "37VucYSaXLCAsxYyAPfbSi9eh4iEcbShgf")

	d84, err := mgr.Derive(PurposeBIP84, 0, 0, 0)
	is.NoErr(err)
	is.Equal(d84.Path, "m/84'/0'/0'/0/0")
	is.Equal(d84.Address, "bc1qcr8te4kr609gcawutmrza0j4xv80jy8z306fyu")
	is.Equal(d84.WIF, "KyZpNDKnfs94vbrwhJneDi77V6jF64PWPF8x5cdJb8ifgg2DUc9d")
}

func TestDerive_SequentialIndexes(t *testing.T) {
	is := is.New(t)
	mgr := NewManager(testMnemonic, "")

	d1, err := mgr.Derive(PurposeBIP84, 0, 0, 1)
	is.NoErr(err)
	is.Equal(d1.Path, "m/84'/0'/0'/0/1")
	is.Equal(d1.Address, "bc1qnjg0jd8228aq7egyzacy8cys3knf9xvrerkf9g")

	// change chain takes a different branch
	dc, err := mgr.Derive(PurposeBIP84, 0, 1, 0)
	is.NoErr(err)
	is.Equal(dc.Path, "m/84'/0'/0'/1/0")
	is.Equal(dc.Address, "bc1q8c6fshw2dlwun7ekn9qwf37cu2rn755upcp6el")
}

func TestDerive_CacheIsStable(t *testing.T) {
	is := is.New(t)
	mgr := NewManager(testMnemonic, "")

	first, err := mgr.Derive(PurposeBIP44, 0, 0, 5)
	is.NoErr(err)
	second, err := mgr.Derive(PurposeBIP44, 0, 0, 5)
	is.NoErr(err)
	is.Equal(first, second)
}

func TestGenerateKey(t *testing.T) {
	is := is.New(t)

	k, err := GenerateKey()
	is.NoErr(err)
	is.Equal(k.Path, "")
	is.Equal(len(k.PrivateHex), 64)
	is.True(strings.HasPrefix(k.Address, "1"))

	// the WIF encodes the same key as the hex
	wif, err := btcutil.DecodeWIF(k.WIF)
	is.NoErr(err)
	is.Equal(hex.EncodeToString(wif.PrivKey.Serialize()), k.PrivateHex)

	other, err := GenerateKey()
	is.NoErr(err)
	is.True(k.PrivateHex != other.PrivateHex)
}

func TestDerive_UnsupportedPurpose(t *testing.T) {
	is := is.New(t)
	mgr := NewManager(testMnemonic, "")

	_, err := mgr.Derive(hardened+86, 0, 0, 0)
	is.True(err != nil)
}

func TestDerive_PassphraseChangesKeys(t *testing.T) {
	is := is.New(t)

	plain, err := NewManager(testMnemonic, "").Derive(PurposeBIP44, 0, 0, 0)
	is.NoErr(err)
	salted, err := NewManager(testMnemonic, "TREZOR").Derive(PurposeBIP44, 0, 0, 0)
	is.NoErr(err)
	is.True(plain.Address != salted.Address)
}
