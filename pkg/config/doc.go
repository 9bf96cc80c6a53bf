// Package config defines the cagmock server configuration and how it is
// assembled.
//
// Sources are layered, later ones winning:
//
//  1. Default()
//  2. a YAML or JSON file (--config)
//  3. variables from .env files, which never override the real environment
//  4. CAGMOCK_* environment variables
//  5. command-line flags, applied by the cli package
//
// Example file:
//
//	server:
//	  port: 8080
//	log:
//	  level: debug
//	pagination:
//	  defaultSize: 10
//	seed:
//	  file: ./seed.yaml
package config
