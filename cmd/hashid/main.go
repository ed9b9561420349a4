package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

func main() {
	// Flag defaults read HASHIDS_* from the environment, so load .env first.
	_ = godotenv.Load()

	if err := newApp(os.Stdout).Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "hashid: %v\n", err)
		os.Exit(1)
	}
}
