package main

import (
	"os"

	"github.com/wonny/eventlens/cmd/eventlens/commands"
)

// main is the entry point for the EventLens CLI
// ⭐ 통합 CLI 진입점: go run ./cmd/eventlens [command]
func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
