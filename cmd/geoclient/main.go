package main

import (
	"context"
	"io"
	"os"
)

func main() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stdout, os.Stderr, newAPIClient))
}

// run executes one invocation and returns the process exit status.
func run(ctx context.Context, args []string, stdout, stderr io.Writer, newClient clientFactory) int {
	a := newApp(stdout, stderr, newClient)
	err := a.execute(ctx, args)
	if err == nil {
		return exitOK
	}

	ce := classify(err)
	a.reportError(ce)
	return ce.ExitCode()
}
