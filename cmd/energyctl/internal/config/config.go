package config

import (
	"fmt"
	"sort"

	"github.com/NilFoundation/energyctl/cmd/energyctl/internal/common"
	"github.com/NilFoundation/energyctl/common/logging"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Quiet makes commands print only their result.
var Quiet = false

var logger = logging.NewLogger("configCommand")

var noConfigCmd = map[string]struct{}{
	"help": {},
	"init": {},
	"set":  {},
}

func GetCommand(configPath *string) *cobra.Command {
	configCmd := &cobra.Command{
		Use:          "config",
		Short:        "Configuration management",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			common.SetConfigFile(*configPath)

			if _, withoutConfig := noConfigCmd[cmd.Name()]; withoutConfig {
				return nil
			}

			if err := viper.ReadInConfig(); err != nil {
				return fmt.Errorf("failed to read config file: %w", err)
			}
			return nil
		},
	}

	initCmd := &cobra.Command{
		Use:          "init",
		Short:        "Initialize config file",
		Args:         cobra.ExactArgs(0),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := common.InitDefaultConfig(*configPath)
			if err != nil {
				logger.Error().Err(err).Msg("Failed to create config")
				return err
			}

			if !Quiet {
				fmt.Fprint(cmd.OutOrStdout(), "Config initialized successfully: ")
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	}

	showCmd := &cobra.Command{
		Use:          "show",
		Short:        "Show the config file content",
		Args:         cobra.ExactArgs(0),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !Quiet {
				fmt.Fprintf(cmd.OutOrStdout(), "Config file: %s\n", viper.ConfigFileUsed())
			}
			section, ok := viper.AllSettings()[common.SectionName].(map[string]any)
			if !ok {
				return nil
			}
			keys := make([]string, 0, len(section))
			for key := range section {
				keys = append(keys, key)
			}
			sort.Strings(keys)
			for _, key := range keys {
				fmt.Fprintf(cmd.OutOrStdout(), "%s: %v\n", key, section[key])
			}
			return nil
		},
	}

	getCmd := &cobra.Command{
		Use:          "get [key]",
		Short:        "Get a config value",
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			key := args[0]
			value := viper.Get(common.SectionName + "." + key)
			if value == nil {
				logger.Warn().Msgf("Key %q is not found in config", key)
				return nil
			}
			if !Quiet {
				fmt.Fprintf(cmd.OutOrStdout(), "%s: ", key)
			}
			fmt.Fprintln(cmd.OutOrStdout(), value)
			return nil
		},
	}

	setCmd := &cobra.Command{
		Use:          "set [key] [value]",
		Short:        "Set a config value",
		Args:         cobra.ExactArgs(2),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, supported := common.SupportedOptions[args[0]]; !supported {
				return fmt.Errorf("key %q is not known", args[0])
			}

			if err := common.PatchConfig(map[string]any{
				args[0]: args[1],
			}, true); err != nil {
				logger.Error().Err(err).Msg("Failed to set config value")
				return err
			}
			logger.Info().Msgf("Set %q to %q", args[0], args[1])
			return nil
		},
	}

	configCmd.AddCommand(initCmd)
	configCmd.AddCommand(showCmd)
	configCmd.AddCommand(getCmd)
	configCmd.AddCommand(setCmd)

	return configCmd
}
