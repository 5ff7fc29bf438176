// Command minidex is the minidex record keeper CLI.
package main

import "github.com/mesh-intelligence/minidex/internal/cli"

func main() {
	cli.Execute()
}
