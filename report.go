package main

import (
	"fmt"
	"io"
	"text/tabwriter"
)

// printResult writes a human-readable report of r to w.
func printResult(w io.Writer, r EvalResult) {
	for _, e := range r.Errors {
		if e.Line > 0 {
			fmt.Fprintf(w, "error: line %d: %s\n", e.Line, e.Message)
		} else {
			fmt.Fprintf(w, "error: %s\n", e.Message)
		}
	}
	for _, e := range r.Warnings {
		fmt.Fprintf(w, "warning: %s\n", e.Message)
	}
	if len(r.Solids) == 0 {
		return
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "SOLID\tVERTICES\tTRIANGLES\tMIN\tMAX")
	for _, s := range r.Solids {
		fmt.Fprintf(tw, "%s\t%d\t%d\t%.3g\t%.3g\n", s.Name, s.Vertices, s.Triangles, s.Min, s.Max)
	}
	tw.Flush()

	if len(r.Classifications) == 0 {
		return
	}
	fmt.Fprintln(w)
	tw = tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "PROBE\tPOINT\tSOLID\tRESULT")
	for _, c := range r.Classifications {
		fmt.Fprintf(tw, "%s\t%g\t%s\t%s\n", c.Probe, c.Point, c.Solid, c.Result)
	}
	tw.Flush()
}
