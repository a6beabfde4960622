// ABOUTME: Entry point for cryptoqa CLI
// ABOUTME: Terminal client for signing in to CryptoQ&A and a local Auth API for development

package main

import (
	"fmt"
	"os"

	"github.com/Ratatouille99337/CryptoQA/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
