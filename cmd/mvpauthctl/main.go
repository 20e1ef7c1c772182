// Command mvpauthctl drives the mvpauth requester session from a terminal
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"mvpauth/internal/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := cli.Execute(ctx, os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		stop()
		os.Exit(cli.ExitCode(err))
	}
}
