// Command willow is the driver for the Willow language, wiring the
// scanner, parser, resolver, and interpreter together behind a CLI.
package main

import "github.com/willow-lang/willow/cmd/willow/cmd"

func main() {
	cmd.Execute()
}
