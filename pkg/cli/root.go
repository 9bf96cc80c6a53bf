package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Persistent flags available to all subcommands
	jsonOutput bool

	// Version is injected during build
	Version = "dev"
	// Commit is injected during build
	Commit = "none"
	// BuildDate is injected during build
	BuildDate = "unknown"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "cagmock",
	Short: "cagmock serves a mock CAG management REST API",
	Long: `cagmock serves an in-memory mock of the CAG management API: clients,
contracts, operation units, CAG assignments and CAG mapping search.

Configuration can be provided via flags, CAGMOCK_* environment variables,
.env files, or a YAML/JSON configuration file.
Running cagmock without a command starts the server.`,
	SilenceUsage:  true,
	SilenceErrors: true, // We handle errors in Main()
}

// Execute runs the command tree and exits with its status code.
// This is called by main.main().
func Execute() {
	os.Exit(Main())
}

// Main runs the command tree against os.Args and returns the exit code.
func Main() int {
	rootCmd.SetArgs(defaultToServe(os.Args[1:]))
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(rootCmd.ErrOrStderr(), "Error:", err)
		return 1
	}
	return 0
}

// defaultToServe routes a bare invocation, or one that starts with a serve
// flag, to the serve command.
func defaultToServe(args []string) []string {
	if len(args) == 0 {
		return []string{"serve"}
	}
	first := args[0]
	if first == "" || first[0] != '-' {
		return args
	}
	switch first {
	case "-h", "--help", "--json":
		return args
	}
	return append([]string{"serve"}, args...)
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output command results in JSON format")
}
