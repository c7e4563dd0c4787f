// Package main is the star-print command: an HTTP bridge that forwards text,
// image and barcode print jobs to a network ESC/POS receipt printer.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
