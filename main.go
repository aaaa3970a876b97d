// file: main.go
// version: 1.0.0
// guid: 1a2b3c4d-5e6f-4a7b-8c9d-0e1f2a3b4c5d

package main

import (
	"fmt"
	"os"

	"github.com/yschoi/aladin-lookup/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
