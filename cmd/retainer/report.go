package main

import (
	"fmt"
	"io"

	"github.com/raoulx24/retainer/internal/worker"
)

// printReport writes the keep and drop lists of every path.
func printReport(out io.Writer, r worker.Report) {
	for _, p := range r.Paths {
		fmt.Fprintf(out, "%s (%s)\n", p.Path, p.Policy)
		for _, name := range p.Kept {
			fmt.Fprintf(out, "  keep  %s\n", name)
		}
		for _, name := range p.Dropped {
			fmt.Fprintf(out, "  drop  %s\n", name)
		}
		for _, f := range p.Failures {
			fmt.Fprintf(out, "  skip  %s\n", f.Name)
		}
	}
}
