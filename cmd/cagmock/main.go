// cagmock serves a mock of the CAG management REST API.
package main

import "github.com/cagmock/cagmock/pkg/cli"

func main() {
	cli.Execute()
}
