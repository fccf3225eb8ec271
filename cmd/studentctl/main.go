// Command studentctl aggregates the student dataset and builds summaries
// from the command line, without starting the server.
package main

import (
	"fmt"
	"os"

	"studentinsight.dev/dashboard/internal/appconf"
)

func main() {
	if err := appconf.LoadDotEnv(".env"); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	if err := newRootCmd(defaultSummarizerFactory).Execute(); err != nil {
		os.Exit(1)
	}
}
