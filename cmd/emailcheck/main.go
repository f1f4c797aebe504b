// Command emailcheck validates email addresses against an email schema.
//
// Addresses come from the arguments, from stdin one per line, or, with
// -extract, from any text on stdin. Each result is printed as a JSON line.
//
//	emailcheck -schema email.yaml user@example.com
//	cat page.html | emailcheck -extract
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	os.Exit(run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}
