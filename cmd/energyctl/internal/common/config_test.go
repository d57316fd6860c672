package common

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type ConfigSuite struct {
	suite.Suite

	path string
}

func (s *ConfigSuite) SetupTest() {
	viper.Reset()
	s.path = filepath.Join(s.T().TempDir(), "energyctl", "config.ini")
	SetConfigFile(s.path)
}

func (s *ConfigSuite) TearDownTest() {
	viper.Reset()
}

func (s *ConfigSuite) TestInitDefaultConfig() {
	path, err := InitDefaultConfig(s.path)
	s.Require().NoError(err)
	s.Equal(s.path, path)

	data, err := os.ReadFile(path)
	s.Require().NoError(err)
	s.Equal(InitConfigTemplate, string(data))

	// an existing config is never overwritten
	_, err = InitDefaultConfig(s.path)
	s.Require().Error(err)
}

func (s *ConfigSuite) TestPatchCreatesAndReads() {
	s.Require().NoError(PatchConfig(map[string]any{
		GatewayField:   "http://127.0.0.1:7950",
		StateFileField: "/tmp/state.toml",
	}, false))

	s.Require().NoError(viper.ReadInConfig())
	s.Equal("http://127.0.0.1:7950", viper.GetString(SectionName+"."+GatewayField))
	s.Equal("/tmp/state.toml", viper.GetString(SectionName+"."+StateFileField))

	var cfg Config
	s.Require().NoError(viper.UnmarshalKey(SectionName, &cfg))
	s.Equal("http://127.0.0.1:7950", cfg.Gateway)
}

func (s *ConfigSuite) TestPatchKeepsComments() {
	_, err := InitDefaultConfig(s.path)
	s.Require().NoError(err)
	s.Require().NoError(PatchConfig(map[string]any{GasPriceField: 2_000_000_000}, false))

	data, err := os.ReadFile(s.path)
	s.Require().NoError(err)
	s.Contains(string(data), "; Specify the gateway")
	s.Contains(string(data), "gas_price = 2000000000")

	s.Require().NoError(viper.ReadInConfig())
	var cfg Config
	s.Require().NoError(viper.UnmarshalKey(SectionName, &cfg))
	s.Equal(uint64(2_000_000_000), cfg.GasPrice)
}

func (s *ConfigSuite) TestPatchWithoutForce() {
	s.Require().NoError(PatchConfig(map[string]any{GatewayField: "http://a"}, false))
	s.Require().Error(PatchConfig(map[string]any{GatewayField: "http://b"}, false))
	s.Require().NoError(PatchConfig(map[string]any{GatewayField: "http://a"}, false))
	s.Require().NoError(PatchConfig(map[string]any{GatewayField: "http://b"}, true))

	s.Require().NoError(viper.ReadInConfig())
	s.Equal("http://b", viper.GetString(SectionName+"."+GatewayField))
}

func TestConfig(t *testing.T) {
	suite.Run(t, new(ConfigSuite))
}

func TestResolveWallet(t *testing.T) {
	t.Parallel()

	w, err := ResolveWallet(&Config{}, zerolog.Nop())
	require.NoError(t, err)
	assert.Equal(t, "erd1qyu5wthldzr8wx5c9ucg8kjagg0jfs53s8nr3zpz3hypefsdd8ssycr6th", w.Address().String())

	_, err = ResolveWallet(&Config{WalletPEM: filepath.Join(t.TempDir(), "missing.pem")}, zerolog.Nop())
	require.Error(t, err)
}
