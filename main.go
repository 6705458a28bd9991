package main

import (
	"os"

	"github.com/joho/godotenv"

	"github.com/nikhilr/prepmock/cmd"
)

func main() {
	// A .env file is optional; API keys may come from the environment.
	_ = godotenv.Load()

	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
