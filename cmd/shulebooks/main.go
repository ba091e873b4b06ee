package main

import (
	"os"

	"github.com/joho/godotenv"

	"github.com/shulebooks/shulebooks/internal/commands"
)

func main() {
	// Load .env for local setups so SHULEBOOKS_BOOKS can live in a file.
	_ = godotenv.Load()

	if err := commands.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
