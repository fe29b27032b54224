package main

import (
	"context"
	"os"

	"github.com/joho/godotenv"
	"github.com/secmon-lab/msnipe/pkg/cli"
)

var version = "dev"

func main() {
	// .env is optional; variables already set in the environment win
	_ = godotenv.Load()

	if err := cli.Run(context.Background(), os.Args, version); err != nil {
		os.Exit(1)
	}
}
