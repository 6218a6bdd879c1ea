// Command dtfmt parses, formats, and translates dates and times.
package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/theory/dtformat/internal/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := cli.Execute(ctx, os.Args[1:])
	stop()
	if err != nil {
		os.Exit(1)
	}
}
