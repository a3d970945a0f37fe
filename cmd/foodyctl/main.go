package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/Haleralex/foodyhub/internal/cli"
)

// Version подставляется при сборке через -ldflags.
var Version = "dev"

func main() {
	_ = godotenv.Load()

	if err := cli.NewRootCommand(Version).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
