package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect the effective configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the resolved configuration",
	Long: `Print the configuration after merging flags, AAROGYAM_* environment
variables and the config file. Later sources win in that order.`,
	RunE: runConfigShow,
}

func init() {
	configCmd.AddCommand(configShowCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	resolved := map[string]interface{}{
		"api_url":      viper.GetString("api_url"),
		"session_file": sessionPath(),
	}
	if used := viper.ConfigFileUsed(); used != "" {
		resolved["config_file"] = used
	}

	if jsonOut {
		return printJSON(resolved)
	}

	out, err := yaml.Marshal(resolved)
	if err != nil {
		return fmt.Errorf("render config: %w", err)
	}
	fmt.Print(string(out))
	return nil
}
