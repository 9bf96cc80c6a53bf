// Package cli provides the command-line interface for cagmock.
//
// Commands:
//   - serve: Start the CAG mock API in the foreground (default command)
//   - openapi: Print the OpenAPI document as JSON or YAML
//   - seed print: Print the embedded seed dataset
//   - seed validate: Check a seed file against the schema and relational rules
//   - config: Show the effective configuration
//   - version: Show build information
//
// Configuration is layered as defaults, config file, .env files, CAGMOCK_*
// environment variables and finally explicitly set flags.
//
// Usage:
//
//	cagmock
//	cagmock serve --port 3000 --seed ./seed.yaml
//	cagmock serve --config cagmock.yaml --log-format json
//	cagmock openapi --format yaml > cag-api.yaml
//	cagmock seed validate ./seed.json
package cli
