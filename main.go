// Package main provides the entry point for the AltairX VM.
//
// For the full CLI, use: go run ./cmd/axvm
package main

import (
	"fmt"
	"os"
)

func main() {
	fmt.Println("AltairX VM - 64-bit VLIW CPU simulator")
	fmt.Println("")
	fmt.Println("Usage: axvm [options] <program>")
	fmt.Println("")
	fmt.Println("Options:")
	fmt.Println("  -kernel      Kernel image loaded into ROM")
	fmt.Println("  -trace       Disassemble each bundle as it executes")
	fmt.Println("  -cachestats  Report I/D cache statistics")
	fmt.Println("  -v           Verbose output")
	fmt.Println("")
	fmt.Println("Run 'go run ./cmd/axvm' for the full CLI.")

	if len(os.Args) > 1 {
		fmt.Println("\nNote: You provided arguments. Use 'go run ./cmd/axvm' instead.")
	}
}
