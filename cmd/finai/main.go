// Package main provides the FinAI command-line client.
package main

import "github.com/finai-labs/finai-go/internal/cli"

func main() {
	cli.Execute()
}
