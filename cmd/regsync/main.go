package main

import "github.com/regsync-labs/regsync-cli/internal/adapters/driving/cli"

func main() {
	cli.Execute()
}
