package service

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/NilFoundation/energyctl/client/mock"
	"github.com/NilFoundation/energyctl/internal/wallet"
	"github.com/stretchr/testify/require"
)

const (
	aliceSecret  = "413f42575f7f26fad3317a778771212fdb80245850981e48b58a4f25e344e8f9"
	aliceAddress = "erd1qyu5wthldzr8wx5c9ucg8kjagg0jfs53s8nr3zpz3hypefsdd8ssycr6th"
)

// TestGenerateNewKey verifies that the GenerateNewKey function generates a new identity
func TestGenerateNewKey(t *testing.T) {
	t.Parallel()

	keyManager := NewService(&mock.MockClient{}, nil, nil, nil)

	err := keyManager.GenerateNewKey()
	require.NoError(t, err, "should generate a new key without error")
	require.NotNil(t, keyManager.wallet, "wallet should not be nil")
	require.Len(t, keyManager.GetPrivateKey(), 64)
}

// TestGenerateKeyFromHex checks that a hexadecimal secret key maps to its address
func TestGenerateKeyFromHex(t *testing.T) {
	t.Parallel()

	keyManager := NewService(&mock.MockClient{}, nil, nil, nil)

	err := keyManager.GenerateKeyFromHex(aliceSecret)
	require.NoError(t, err, "should parse hex without error")
	require.Equal(t, aliceAddress, keyManager.Wallet().Address().String())
	require.Equal(t, aliceSecret, keyManager.GetPrivateKey(), "private key hex should match expected")

	require.Error(t, keyManager.GenerateKeyFromHex("abcd"))
}

// TestLoadKeyPEM checks that a saved key file loads back into the same identity
func TestLoadKeyPEM(t *testing.T) {
	t.Parallel()

	keyManager := NewService(&mock.MockClient{}, wallet.Alice(), nil, nil)
	path := filepath.Join(t.TempDir(), "alice.pem")
	require.NoError(t, os.WriteFile(path, keyManager.GetKeyPEM(), 0o600))

	loaded := NewService(&mock.MockClient{}, nil, nil, nil)
	require.NoError(t, loaded.LoadKeyPEM(path))
	require.Equal(t, aliceAddress, loaded.Wallet().Address().String())
}
