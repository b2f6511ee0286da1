// Command reqlens compares requirement documents against existing
// feature sets and reports reuse opportunities.
package main

import (
	"fmt"
	"os"

	"github.com/reqlens/reqlens-cli/internal/adapters/driving/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
