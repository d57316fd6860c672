package wallet

import (
	"bytes"
	"crypto/ed25519"
	"crypto/rand"
	"encoding/hex"
	"encoding/pem"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/NilFoundation/energyctl/internal/types"
)

const pemTypePrefix = "PRIVATE KEY for "

// aliceSeed is the secret key of the public devnet test wallet "alice".
const aliceSeed = "413f42575f7f26fad3317a778771212fdb80245850981e48b58a4f25e344e8f9"

var ErrInvalidKey = errors.New("invalid private key")

// Wallet is the single sender identity of the client.
type Wallet struct {
	key     ed25519.PrivateKey
	address types.Address
}

func New(key ed25519.PrivateKey) *Wallet {
	pub, ok := key.Public().(ed25519.PublicKey)
	if !ok {
		panic("ed25519 key without ed25519 public key")
	}
	return &Wallet{key: key, address: types.BytesToAddress(pub)}
}

func Generate() (*Wallet, error) {
	_, key, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return nil, err
	}
	return New(key), nil
}

// FromHex accepts a 32-byte seed or a 64-byte seed||public key, hex encoded.
func FromHex(hexKey string) (*Wallet, error) {
	raw, err := hex.DecodeString(strings.TrimPrefix(strings.TrimSpace(hexKey), "0x"))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidKey, err)
	}
	switch len(raw) {
	case ed25519.SeedSize:
		return New(ed25519.NewKeyFromSeed(raw)), nil
	case ed25519.PrivateKeySize:
		key := ed25519.NewKeyFromSeed(raw[:ed25519.SeedSize])
		if !bytes.Equal(key[ed25519.SeedSize:], raw[ed25519.SeedSize:]) {
			return nil, fmt.Errorf("%w: public key does not match the seed", ErrInvalidKey)
		}
		return New(key), nil
	}
	return nil, fmt.Errorf("%w: unexpected length %d", ErrInvalidKey, len(raw))
}

// Alice returns the well-known devnet test wallet.
func Alice() *Wallet {
	w, err := FromHex(aliceSeed)
	if err != nil {
		panic(err)
	}
	return w
}

// ParsePEM reads a wallet key file: a "PRIVATE KEY for erd1..." block holding the hex of seed||public key.
func ParsePEM(data []byte) (*Wallet, error) {
	block, _ := pem.Decode(data)
	if block == nil {
		return nil, fmt.Errorf("%w: no PEM block found", ErrInvalidKey)
	}
	if !strings.HasPrefix(block.Type, pemTypePrefix) {
		return nil, fmt.Errorf("%w: unexpected PEM block %q", ErrInvalidKey, block.Type)
	}
	w, err := FromHex(string(block.Bytes))
	if err != nil {
		return nil, err
	}
	if label := strings.TrimPrefix(block.Type, pemTypePrefix); label != w.address.String() {
		return nil, fmt.Errorf("%w: key file is labeled %s but holds the key of %s", ErrInvalidKey, label, w.address)
	}
	return w, nil
}

func LoadPEM(path string) (*Wallet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read wallet file: %w", err)
	}
	return ParsePEM(data)
}

// PEM encodes the wallet in the key file format read by ParsePEM.
func (w *Wallet) PEM() []byte {
	return pem.EncodeToMemory(&pem.Block{
		Type:  pemTypePrefix + w.address.String(),
		Bytes: []byte(hex.EncodeToString(w.key)),
	})
}

func (w *Wallet) Address() types.Address {
	return w.address
}

func (w *Wallet) Sign(message []byte) []byte {
	return ed25519.Sign(w.key, message)
}

// PrivateKeyHex returns the seed in hex.
func (w *Wallet) PrivateKeyHex() string {
	return hex.EncodeToString(w.key.Seed())
}
