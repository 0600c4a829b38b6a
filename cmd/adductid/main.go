// adductid - Adduct detection for grouped LC-MS features
package main

import (
	"fmt"
	"os"

	"github.com/ChrisMcGann/adductid/cmd/adductid/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
