// Command shimgen manages shims: it copies the shim executable into
// the shim directory and writes the sidecar files the shim reads at
// launch time.
package main

import (
	"fmt"
	"os"

	"github.com/kiennq/scoop-better-shimexe/internal/cli"
)

func main() {
	rootCmd := cli.NewRootCmd()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
