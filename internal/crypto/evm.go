package crypto

import (
	"crypto/ecdsa"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/keystore"
	gethcrypto "github.com/ethereum/go-ethereum/crypto"
)

func PrivToHex(priv *ecdsa.PrivateKey) string {
	return hex.EncodeToString(gethcrypto.FromECDSA(priv))
}

func PrivFromHex(s string) (*ecdsa.PrivateKey, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "0x")
	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("decode private hex: %w", err)
	}
	return gethcrypto.ToECDSA(b)
}

func AddressHex(priv *ecdsa.PrivateKey) string {
	return gethcrypto.PubkeyToAddress(priv.PublicKey).Hex()
}

// KeystoreJSON encrypts a private key into the geth keystore v3 format with
// standard scrypt parameters.
func KeystoreJSON(priv *ecdsa.PrivateKey, password string) ([]byte, error) {
	key := &keystore.Key{
		Address:    gethcrypto.PubkeyToAddress(priv.PublicKey),
		PrivateKey: priv,
	}
	return keystore.EncryptKey(key, password, keystore.StandardScryptN, keystore.StandardScryptP)
}

// DecryptKeystoreJSON reverses KeystoreJSON.
func DecryptKeystoreJSON(blob []byte, password string) (*ecdsa.PrivateKey, error) {
	key, err := keystore.DecryptKey(blob, password)
	if err != nil {
		return nil, err
	}
	return key.PrivateKey, nil
}
