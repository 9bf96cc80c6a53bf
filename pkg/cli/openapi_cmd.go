package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/cagmock/cagmock/pkg/api"
	"github.com/cagmock/cagmock/pkg/config"
)

var (
	openapiFormat    string
	openapiServerURL string
	openapiOutput    string
)

var openapiCmd = &cobra.Command{
	Use:   "openapi",
	Short: "Print the OpenAPI document of the CAG API",
	Long: `Print the OpenAPI 3.0 document the server publishes at /api-docs.json, so it
can be fed to client generators without starting the server.`,
	Example: `  cagmock openapi > cag-api.json
  cagmock openapi --format yaml -o cag-api.yaml
  cagmock openapi --server-url https://cag-mock.internal`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if openapiOutput == "" {
			return writeDocument(cmd.OutOrStdout(), openapiFormat, openapiServerURL)
		}
		f, err := os.Create(openapiOutput)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		if err := writeDocument(f, openapiFormat, openapiServerURL); err != nil {
			_ = f.Close()
			return err
		}
		return f.Close()
	},
}

// writeDocument renders the OpenAPI document in format ("json" or "yaml").
func writeDocument(w io.Writer, format, serverURL string) error {
	if format != "json" && format != "yaml" {
		return fmt.Errorf("unsupported format %q (use json or yaml)", format)
	}

	doc, err := api.NewDocument(serverURL)
	if err != nil {
		return err
	}
	jsonDoc, yamlDoc, err := api.MarshalDocument(doc)
	if err != nil {
		return err
	}

	body := jsonDoc
	if format == "yaml" {
		body = yamlDoc
	}
	if _, err := w.Write(body); err != nil {
		return err
	}
	if len(body) > 0 && body[len(body)-1] != '\n' {
		_, err = io.WriteString(w, "\n")
	}
	return err
}

func init() {
	rootCmd.AddCommand(openapiCmd)
	openapiCmd.Flags().StringVarP(&openapiFormat, "format", "f", "json", "Output format (json, yaml)")
	openapiCmd.Flags().StringVar(&openapiServerURL, "server-url", config.Default().Server.BaseURL(), "Server URL listed in the document")
	openapiCmd.Flags().StringVarP(&openapiOutput, "output", "o", "", "Write to file instead of stdout")
}
