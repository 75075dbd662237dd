// main is the entry point for the focuswatch CLI.
package main

import (
	"fmt"
	"os"

	"github.com/focuslab/focuswatch/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		_ = cmd.StopProfiling()
		os.Exit(1)
	}
	if err := cmd.StopProfiling(); err != nil {
		fmt.Fprintln(os.Stderr, "Warning:", err)
	}
}
