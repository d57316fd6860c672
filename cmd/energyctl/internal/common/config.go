package common

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/NilFoundation/energyctl/common/check"
	"github.com/NilFoundation/energyctl/internal/state"
	"github.com/NilFoundation/energyctl/internal/wallet"
	"github.com/spf13/viper"
)

type Config struct {
	Gateway    string         `mapstructure:"gateway"`
	WalletPEM  string         `mapstructure:"wallet_pem"`
	PrivateKey *wallet.Wallet `mapstructure:"private_key"`
	StateFile  string         `mapstructure:"state_file"`
	GasPrice   uint64         `mapstructure:"gas_price"`
	Timeout    time.Duration  `mapstructure:"timeout"`
}

const (
	SectionName = "energyctl"

	GatewayField    = "gateway"
	WalletPEMField  = "wallet_pem"
	PrivateKeyField = "private_key"
	StateFileField  = "state_file"
	GasPriceField   = "gas_price"
	TimeoutField    = "timeout"
)

// SupportedOptions are the keys accepted by "config set".
var SupportedOptions = map[string]struct{}{
	GatewayField:    {},
	WalletPEMField:  {},
	PrivateKeyField: {},
	StateFileField:  {},
	GasPriceField:   {},
	TimeoutField:    {},
}

const InitConfigTemplate = `; Configuration for interacting with the energy factory contract
[energyctl]

; Specify the gateway of the network the contract lives on
; For example, to use the devnet gateway, set it as below
; gateway = "https://devnet-gateway.multiversx.com"

; Specify the wallet key file used for signing transactions
; wallet_pem = "/path/to/wallet.pem"

; Alternatively, specify the hexadecimal secret key of the wallet.
; You can generate a new key with "energyctl keygen new".
; private_key = "WRITE_YOUR_PRIVATE_KEY_HERE"

; Specify where the address of the deployed contract is kept
; state_file = "state.toml"

; Specify the gas price, the network minimum is used when it is lower
; gas_price = 1000000000

; Specify the timeout of a single gateway request
; timeout = "30s"
`

var DefaultConfigPath string

func init() {
	homeDir, err := os.UserHomeDir()
	check.PanicIfErr(err)

	DefaultConfigPath = filepath.Join(homeDir, ".config/energyctl/config.ini")
}

// DefaultConfig is the configuration used for keys missing from the config file.
func DefaultConfig() Config {
	return Config{
		StateFile: state.DefaultFile,
	}
}

func InitDefaultConfig(configPath string) (string, error) {
	if configPath == "" {
		configPath = DefaultConfigPath
	}

	dirPath := filepath.Dir(configPath)
	if err := os.MkdirAll(dirPath, 0o755); err != nil {
		return "", fmt.Errorf("failed to create directory: %w", err)
	}

	file, err := os.OpenFile(configPath, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		return "", fmt.Errorf("failed to create config file: %w", err)
	}
	defer file.Close()

	if _, err := file.WriteString(InitConfigTemplate); err != nil {
		return "", fmt.Errorf("failed to write template to config file: %w", err)
	}
	return configPath, nil
}

// PatchConfig rewrites the given keys of the config file in place, keeping comments and order.
// Unknown keys are appended. Without force, an existing different value is an error.
func PatchConfig(delta map[string]any, force bool) error {
	configPath := viper.ConfigFileUsed()
	if configPath == "" {
		// impossible, since we set the default in SetConfigFile
		panic("config file is not set")
	}
	if _, err := os.Stat(configPath); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			configPath, err = InitDefaultConfig(configPath)
		}
		if err != nil {
			return err
		}
	}

	if !force {
		for key, value := range delta {
			oldValue := viper.GetString(SectionName + "." + key)
			if oldValue != "" && oldValue != fmt.Sprint(value) {
				return fmt.Errorf("key %q already exists in the config file", key)
			}
		}
	}

	cfg, err := os.ReadFile(configPath)
	if err != nil {
		return err
	}

	pending := make(map[string]any, len(delta))
	for k, v := range delta {
		pending[k] = v
	}

	lines := strings.Split(string(cfg), "\n")
	for i, line := range lines {
		key := strings.TrimSpace(strings.Split(line, "=")[0])
		if value, ok := pending[key]; ok {
			lines[i] = fmt.Sprintf("%s = %v", key, value)
			delete(pending, key)
		}
	}
	result := strings.Join(lines, "\n")
	if len(pending) > 0 && !strings.HasSuffix(result, "\n") {
		result += "\n"
	}
	for key, value := range pending {
		result += fmt.Sprintf("%s = %v\n", key, value)
	}
	if err := os.WriteFile(configPath, []byte(result), 0o600); err != nil {
		return err
	}

	for key, value := range delta {
		viper.Set(SectionName+"."+key, value)
	}
	return nil
}

// SetConfigFile sets the config file for the viper
func SetConfigFile(cfgFile string) {
	viper.SetConfigType("ini")
	viper.SetConfigFile(cfgFile)
}
