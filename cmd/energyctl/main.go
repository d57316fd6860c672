package main

import (
	"errors"
	"fmt"
	"os"
	"reflect"

	"github.com/NilFoundation/energyctl/cmd/energyctl/internal/address"
	"github.com/NilFoundation/energyctl/cmd/energyctl/internal/catalog"
	"github.com/NilFoundation/energyctl/cmd/energyctl/internal/common"
	"github.com/NilFoundation/energyctl/cmd/energyctl/internal/config"
	"github.com/NilFoundation/energyctl/cmd/energyctl/internal/endpoint"
	"github.com/NilFoundation/energyctl/cmd/energyctl/internal/keygen"
	"github.com/NilFoundation/energyctl/cmd/energyctl/internal/version"
	"github.com/NilFoundation/energyctl/common/logging"
	"github.com/NilFoundation/energyctl/internal/state"
	"github.com/NilFoundation/energyctl/internal/wallet"
	"github.com/mitchellh/mapstructure"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

type RootCommand struct {
	baseCmd   *cobra.Command
	config    common.Config
	cfgFile   string
	stateFile string
	logLevel  string
	verbose   bool
}

var logger = logging.NewLogger("root")

var noConfigCmd = map[string]struct{}{
	"help":             {},
	"keygen":           {},
	"completion":       {},
	"__complete":       {},
	"__completeNoDesc": {},
	"config":           {},
	"version":          {},
	"catalog":          {},
}

func main() {
	var rootCmd *RootCommand

	rootCmd = &RootCommand{
		config: common.DefaultConfig(),
		baseCmd: &cobra.Command{
			Use:   common.AppName,
			Short: "CLI tool for the energy factory contract",
			PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
				if err := logging.SetupGlobalLogger(rootCmd.verbose, rootCmd.logLevel); err != nil {
					return err
				}

				// Set the config file for all commands because some commands can write something to it.
				// E.g. "keygen" command writes a private key to the config file (and creates if it doesn't exist)
				common.SetConfigFile(rootCmd.cfgFile)

				// Traverse up to find the top-level command
				for cmd.HasParent() && cmd.Parent() != rootCmd.baseCmd {
					cmd = cmd.Parent()
				}

				if _, withoutConfig := noConfigCmd[cmd.Name()]; withoutConfig {
					return nil
				}
				if err := rootCmd.loadConfig(); err != nil {
					return err
				}
				if rootCmd.stateFile != "" {
					rootCmd.config.StateFile = rootCmd.stateFile
				}
				if rootCmd.config.StateFile == "" {
					rootCmd.config.StateFile = state.DefaultFile
				}
				common.InitGatewayClient(&rootCmd.config, logger)
				return nil
			},
			SilenceUsage:  true,
			SilenceErrors: true,
		},
	}

	rootCmd.baseCmd.PersistentFlags().StringVarP(&rootCmd.cfgFile, "config", "c", common.DefaultConfigPath, "Path to config file")
	rootCmd.baseCmd.PersistentFlags().StringVar(&rootCmd.stateFile, "state", "", "Path to the state file (overrides the config)")
	rootCmd.baseCmd.PersistentFlags().StringVarP(&rootCmd.logLevel, "log-level", "l", "info", "Log level: trace|debug|info|warn|error|fatal|panic")
	rootCmd.baseCmd.PersistentFlags().BoolVarP(
		&config.Quiet,
		"quiet",
		"q",
		false,
		"Quiet mode (print only the result and exit)",
	)
	rootCmd.baseCmd.PersistentFlags().BoolVarP(
		&rootCmd.verbose,
		"verbose",
		"v",
		false,
		"Verbose mode (print logs)",
	)

	rootCmd.registerSubCommands()
	rootCmd.Execute()
}

// registerSubCommands adds all subcommands to the root command
func (rc *RootCommand) registerSubCommands() {
	rc.baseCmd.AddCommand(
		address.GetCommand(&rc.config),
		catalog.GetCommand(),
		config.GetCommand(&rc.cfgFile),
		keygen.GetCommand(),
		version.GetCommand(),
	)
	rc.baseCmd.AddCommand(endpoint.GetCommands(&rc.config)...)
}

func decodePrivateKey(f reflect.Type, t reflect.Type, data any) (any, error) {
	if f.Kind() == reflect.String && t == reflect.TypeOf(&wallet.Wallet{}) {
		s, _ := data.(string)
		if s == "" {
			return (*wallet.Wallet)(nil), nil
		}
		return wallet.FromHex(s)
	}
	return data, nil
}

func updateDecoderConfig(config *mapstructure.DecoderConfig) {
	config.DecodeHook = mapstructure.ComposeDecodeHookFunc(
		config.DecodeHook,
		decodePrivateKey,
	)
}

// loadConfig loads the configuration from the config file
func (rc *RootCommand) loadConfig() error {
	err := viper.ReadInConfig()

	// Create file if it doesn't exist
	if errors.As(err, new(viper.ConfigFileNotFoundError)) || errors.Is(err, os.ErrNotExist) {
		logger.Info().Msg("Config file not found. Creating a new one...")

		path, errCfg := common.InitDefaultConfig(rc.cfgFile)
		if errCfg != nil {
			logger.Error().Err(errCfg).Msg("Failed to create config")
			return errCfg
		}

		logger.Info().Msgf("Config file created successfully at %s", path)
		logger.Info().Msgf("set via `%s config set <option> <value>` or via config file", os.Args[0])
		return nil
	}

	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	if err := viper.UnmarshalKey(common.SectionName, &rc.config, updateDecoderConfig); err != nil {
		return fmt.Errorf("unable to decode config: %w", err)
	}

	logger.Debug().Msg("Configuration loaded successfully")
	return nil
}

// Execute runs the root command and handles any errors
func (rc *RootCommand) Execute() {
	if err := rc.baseCmd.Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)

		os.Exit(1)
	}
}
