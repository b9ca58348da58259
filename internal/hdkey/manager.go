package hdkey

import (
	"encoding/hex"
	"fmt"
	"sync"

	btcec "github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/btcsuite/btcd/txscript"
	bip32 "github.com/tyler-smith/go-bip32"

	"walletkit/internal/mnemonic"
)

// Purpose selects the BIP43 purpose level and with it the address form.
type Purpose = uint32

const (
	PurposeBIP44 Purpose = hardened + 44 // legacy P2PKH
	PurposeBIP49 Purpose = hardened + 49 // nested SegWit P2SH-P2WPKH
	PurposeBIP84 Purpose = hardened + 84 // native SegWit P2WPKH
)

const (
	hardened    uint32 = 0x80000000
	coinTypeBTC uint32 = hardened + 0
)

// Derivation is the result of deriving one (purpose, account, change, index)
// tuple: the path, the address in the purpose's native form, and the key
// serializations.
type Derivation struct {
	Path       string
	Address    string
	PrivateHex string
	WIF        string
	PublicHex  string
}

// Manager derives BTC keys from a seed and caches intermediate BIP32 nodes
// by path, so sequential index scans do not re-derive the account chain.
type Manager struct {
	mux  sync.Mutex
	keys map[string]*bip32.Key
	seed []byte
}

// NewManager builds a Manager from a BIP39 mnemonic and optional passphrase.
func NewManager(mn, passphrase string) *Manager {
	return NewManagerFromSeed(mnemonic.Seed(mn, passphrase))
}

func NewManagerFromSeed(seed []byte) *Manager {
	return &Manager{keys: make(map[string]*bip32.Key), seed: seed}
}

func (m *Manager) cached(path string) (*bip32.Key, bool) {
	m.mux.Lock()
	defer m.mux.Unlock()
	key, ok := m.keys[path]
	return key, ok
}

func (m *Manager) store(path string, key *bip32.Key) {
	m.mux.Lock()
	defer m.mux.Unlock()
	m.keys[path] = key
}

func (m *Manager) masterKey() (*bip32.Key, error) {
	const path = "m"
	if key, ok := m.cached(path); ok {
		return key, nil
	}
	key, err := bip32.NewMasterKey(m.seed)
	if err != nil {
		return nil, err
	}
	m.store(path, key)
	return key, nil
}

// childKey walks m/purpose'/0'/account'/change from the cached master key,
// caching every level.
func (m *Manager) childKey(purpose Purpose, account, change uint32) (*bip32.Key, error) {
	type level struct {
		child uint32
		path  string
	}
	levels := []level{
		{purpose, fmt.Sprintf("m/%d'", purpose-hardened)},
		{coinTypeBTC, fmt.Sprintf("m/%d'/0'", purpose-hardened)},
		{account + hardened, fmt.Sprintf("m/%d'/0'/%d'", purpose-hardened, account)},
		{change, fmt.Sprintf("m/%d'/0'/%d'/%d", purpose-hardened, account, change)},
	}

	parent, err := m.masterKey()
	if err != nil {
		return nil, err
	}
	for _, lv := range levels {
		if key, ok := m.cached(lv.path); ok {
			parent = key
			continue
		}
		key, err := parent.NewChildKey(lv.child)
		if err != nil {
			return nil, fmt.Errorf("derive %s: %w", lv.path, err)
		}
		m.store(lv.path, key)
		parent = key
	}
	return parent, nil
}

// Derive returns the keys and address at
// m/purpose'/0'/account'/change/index. The address form follows the purpose:
// BIP44 legacy, BIP49 nested SegWit, BIP84 bech32.
func (m *Manager) Derive(purpose Purpose, account, change, index uint32) (*Derivation, error) {
	path := fmt.Sprintf("m/%d'/0'/%d'/%d/%d", purpose-hardened, account, change, index)

	key, ok := m.cached(path)
	if !ok {
		parent, err := m.childKey(purpose, account, change)
		if err != nil {
			return nil, err
		}
		key, err = parent.NewChildKey(index)
		if err != nil {
			return nil, fmt.Errorf("derive %s: %w", path, err)
		}
		m.store(path, key)
	}

	priv, _ := btcec.PrivKeyFromBytes(key.Key)
	wif, err := btcutil.NewWIF(priv, &chaincfg.MainNetParams, true)
	if err != nil {
		return nil, err
	}

	addr, err := addressFor(purpose, wif.SerializePubKey())
	if err != nil {
		return nil, err
	}

	return &Derivation{
		Path:       path,
		Address:    addr,
		PrivateHex: hex.EncodeToString(priv.Serialize()),
		WIF:        wif.String(),
		PublicHex:  hex.EncodeToString(wif.SerializePubKey()),
	}, nil
}

func addressFor(purpose Purpose, serializedPubKey []byte) (string, error) {
	switch purpose {
	case PurposeBIP44:
		return P2PKHAddress(serializedPubKey)
	case PurposeBIP49:
		witness, err := btcutil.NewAddressWitnessPubKeyHash(
			btcutil.Hash160(serializedPubKey), &chaincfg.MainNetParams)
		if err != nil {
			return "", err
		}
		script, err := txscript.PayToAddrScript(witness)
		if err != nil {
			return "", err
		}
		nested, err := btcutil.NewAddressScriptHash(script, &chaincfg.MainNetParams)
		if err != nil {
			return "", err
		}
		return nested.EncodeAddress(), nil
	case PurposeBIP84:
		witness, err := btcutil.NewAddressWitnessPubKeyHash(
			btcutil.Hash160(serializedPubKey), &chaincfg.MainNetParams)
		if err != nil {
			return "", err
		}
		return witness.EncodeAddress(), nil
	default:
		return "", fmt.Errorf("unsupported purpose: %d'", purpose-hardened)
	}
}

// GenerateKey returns a fresh random private key with its WIF and legacy
// address. The key is standalone, not derived from any seed, so Path is
// empty.
func GenerateKey() (*Derivation, error) {
	priv, err := btcec.NewPrivateKey()
	if err != nil {
		return nil, err
	}
	wif, err := btcutil.NewWIF(priv, &chaincfg.MainNetParams, true)
	if err != nil {
		return nil, err
	}
	addr, err := P2PKHAddress(wif.SerializePubKey())
	if err != nil {
		return nil, err
	}
	return &Derivation{
		Address:    addr,
		PrivateHex: hex.EncodeToString(priv.Serialize()),
		WIF:        wif.String(),
		PublicHex:  hex.EncodeToString(wif.SerializePubKey()),
	}, nil
}

// P2PKHAddress encodes a serialized public key as a legacy mainnet address.
func P2PKHAddress(serializedPubKey []byte) (string, error) {
	addr, err := btcutil.NewAddressPubKey(serializedPubKey, &chaincfg.MainNetParams)
	if err != nil {
		return "", err
	}
	return addr.EncodeAddress(), nil
}
