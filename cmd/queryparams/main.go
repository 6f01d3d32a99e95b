// The queryparams command is a code generator for HTTP query string
// representations of Go structs.
//
// For each selected struct type, it generates a ToQueryParams method that
// returns the query string with fields rendered in declaration order. The
// rendering of a field depends on the shape of its type:
//
//   - Scalar:
//     Page int         // page=2
//
//   - Optional (pointer, omitted when nil):
//     Sort *string     // sort=asc
//
//   - List (slice or array, comma separated):
//     State []string   // state=open,closed
//
// Field names are used as keys verbatim, and neither keys nor values are
// escaped. For example:
//
//	//queryparams:generate
//	type search_params struct {
//		page  int
//		sort  *string
//		state []string
//	}
//
// produces a method that returns "?page=2&state=open,closed" when sort is nil.
// A struct without fields, or with only nil pointer fields, yields an empty
// string.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"go.pact.im/x/queryparams/internal/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := cli.Execute(ctx, os.Args[1:])
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
