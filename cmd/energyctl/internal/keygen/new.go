package keygen

import (
	"fmt"
	"io"
	"os"

	"github.com/NilFoundation/energyctl/cli/service"
	"github.com/NilFoundation/energyctl/cmd/energyctl/internal/config"
	"github.com/spf13/cobra"
)

const pemFlag = "pem"

func NewCommand(keygen *service.Service) *cobra.Command {
	var pemPath string

	cmd := &cobra.Command{
		Use:   "new",
		Short: "Generate a new key",
		Args:  cobra.ExactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := keygen.GenerateNewKey(); err != nil {
				return err
			}
			return printKey(cmd.OutOrStdout(), keygen, pemPath)
		},
		SilenceUsage: true,
	}
	cmd.Flags().StringVar(&pemPath, pemFlag, "", "Also save the key to this wallet key file")
	return cmd
}

func FromHexCommand(keygen *service.Service) *cobra.Command {
	var pemPath string

	cmd := &cobra.Command{
		Use:   "from-hex [key]",
		Short: "Generate a key from a provided hex private key",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := keygen.GenerateKeyFromHex(args[0]); err != nil {
				return err
			}
			return printKey(cmd.OutOrStdout(), keygen, pemPath)
		},
		SilenceUsage: true,
	}
	cmd.Flags().StringVar(&pemPath, pemFlag, "", "Also save the key to this wallet key file")
	return cmd
}

func FromPEMCommand(keygen *service.Service) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "from-pem [file]",
		Short: "Import a key from a wallet key file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := keygen.LoadKeyPEM(args[0]); err != nil {
				return err
			}
			return printKey(cmd.OutOrStdout(), keygen, "")
		},
		SilenceUsage: true,
	}
	return cmd
}

func printKey(w io.Writer, keygen *service.Service, pemPath string) error {
	if !config.Quiet {
		fmt.Fprint(w, "Private key: ")
	}
	fmt.Fprintln(w, keygen.GetPrivateKey())

	if !config.Quiet {
		fmt.Fprintf(w, "Address: %s\n", keygen.Wallet().Address())
	}

	if pemPath == "" {
		return nil
	}
	if err := os.WriteFile(pemPath, keygen.GetKeyPEM(), 0o600); err != nil {
		return fmt.Errorf("failed to write key file: %w", err)
	}
	if !config.Quiet {
		fmt.Fprintf(w, "Key file: %s\n", pemPath)
	}
	return nil
}
