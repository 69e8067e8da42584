package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
)

// Version is reported by --version.
var Version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := runContext(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, "sdoc:", err)
		os.Exit(1)
	}
}
