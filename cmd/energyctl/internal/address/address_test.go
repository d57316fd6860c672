package address

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/NilFoundation/energyctl/client"
	"github.com/NilFoundation/energyctl/client/mock"
	"github.com/NilFoundation/energyctl/cmd/energyctl/internal/common"
	"github.com/NilFoundation/energyctl/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	aliceBech32    = "erd1qyu5wthldzr8wx5c9ucg8kjagg0jfs53s8nr3zpz3hypefsdd8ssycr6th"
	contractBech32 = "erd1qqqqqqqqqqqqqpgqd77fnev2sthnczp2lnfx0y5jdycynjfhzzgq6p3rax"
)

func TestAddress(t *testing.T) {
	stateFile := filepath.Join(t.TempDir(), "state.toml")
	require.NoError(t, os.WriteFile(stateFile, []byte("contract_address = \""+contractBech32+"\"\n"), 0o644))

	common.SetGatewayClient(&mock.MockClient{
		Account: &client.Account{
			Address: types.MustParseAddress(aliceBech32),
			Nonce:   7,
			Balance: types.NewValueFromUint64(1000),
		},
	})

	cmd := GetCommand(&common.Config{StateFile: stateFile})
	out := new(bytes.Buffer)
	cmd.SetOut(out)
	cmd.SetArgs([]string{"--balance"})
	require.NoError(t, cmd.Execute())

	assert.Equal(t,
		"Wallet: "+aliceBech32+"\nContract: "+contractBech32+"\nNonce: 7\nBalance: 1000\n",
		out.String())
}

func TestAddressWithoutContract(t *testing.T) {
	cmd := GetCommand(&common.Config{StateFile: filepath.Join(t.TempDir(), "state.toml")})
	out := new(bytes.Buffer)
	cmd.SetOut(out)
	cmd.SetArgs(nil)
	require.NoError(t, cmd.Execute())

	assert.Equal(t, "Wallet: "+aliceBech32+"\n", out.String())
}
