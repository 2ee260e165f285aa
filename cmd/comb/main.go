package main

import "github.com/comb-labs/comb-cli/internal/adapters/driving/cli"

func main() {
	cli.Execute()
}
