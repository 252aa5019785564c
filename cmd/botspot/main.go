// main is the entry point for the botspot CLI.
package main

import (
	"fmt"
	"os"

	"github.com/huangsam/botspot/cmd"
	"github.com/huangsam/botspot/internal/iocache"
)

func main() {
	defer iocache.CloseStore()

	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "❌", err)
		iocache.CloseStore()
		os.Exit(1)
	}
}
