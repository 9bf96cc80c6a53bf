package cli

import (
	"github.com/spf13/cobra"

	"github.com/cagmock/cagmock/pkg/cli/internal/output"
	"github.com/cagmock/cagmock/pkg/config"
)

var (
	configFile     string
	configEnvFiles []string
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show effective configuration",
	Long: `Show the configuration serve would start with after merging defaults, the
config file, .env files and CAGMOCK_* environment variables.`,
	Example: `  cagmock config
  cagmock config --config cagmock.yaml --json`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(config.LoadOptions{File: configFile, DotEnv: configEnvFiles})
		if err != nil {
			return err
		}
		if err := cfg.Validate(); err != nil {
			return err
		}
		if jsonOutput {
			return output.JSON(cmd.OutOrStdout(), cfg)
		}
		data, err := cfg.Marshal()
		if err != nil {
			return err
		}
		_, err = cmd.OutOrStdout().Write(data)
		return err
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.Flags().StringVarP(&configFile, "config", "c", "", "Path to YAML or JSON configuration file")
	configCmd.Flags().StringSliceVar(&configEnvFiles, "env-file", []string{".env"}, "Dotenv files to load (missing files are skipped)")
}
