package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mgpai22/subpo/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Configuration utilities",
}

var configInitCmd = &cobra.Command{
	Use:         "init",
	Short:       "Create a sample configuration file",
	Args:        cobra.NoArgs,
	Annotations: map[string]string{skipConfigLoad: "true"},
	RunE: func(cmd *cobra.Command, _ []string) error {
		target, _ := cmd.Flags().GetString("path")
		overwrite, _ := cmd.Flags().GetBool("overwrite")

		var err error
		if target = strings.TrimSpace(target); target == "" {
			target, err = config.DefaultConfigPath()
		} else {
			target, err = config.ExpandPath(target)
		}
		if err != nil {
			return fmt.Errorf("resolve config path: %w", err)
		}

		if !overwrite {
			if _, err := os.Stat(target); err == nil {
				return fmt.Errorf("config file already exists at %s (use --overwrite to replace it)", target)
			} else if !os.IsNotExist(err) {
				return fmt.Errorf("check config path: %w", err)
			}
		}
		if err := config.CreateSample(target); err != nil {
			return fmt.Errorf("create sample config: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Wrote sample configuration to %s\n", target)
		return nil
	},
}

var configValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate the configuration file",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		_, path, exists, err := config.Load(configPath)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Config path: %s\n", path)
		if !exists {
			fmt.Fprintln(out, "Config file did not exist; defaults were used")
		}
		fmt.Fprintln(out, "Configuration valid")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configInitCmd, configValidateCmd)

	configInitCmd.Flags().
		StringP("path", "p", "", "Destination for the configuration file")
	configInitCmd.Flags().
		Bool("overwrite", false, "Overwrite existing configuration if present")
}
