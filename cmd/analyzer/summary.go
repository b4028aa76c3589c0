package main

import (
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"

	"TrendLens/internal/analysis"
)

// printSummary writes one row per symbol with the assessment and Fibonacci kind.
func printSummary(w io.Writer, outcomes []analysis.Outcome) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Symbol", "Price", "Score", "Sentiment", "Support", "Resistance", "Target", "Fibonacci", "Error"})
	for _, o := range outcomes {
		if o.Err != nil {
			t.AppendRow(table.Row{o.Symbol, "", "", "", "", "", "", "", o.Err.Error()})
			continue
		}
		a := o.Analysis.Assessment
		fib := "-"
		if f := o.Analysis.Fibonacci; f != nil {
			fib = fmt.Sprintf("%s (%s)", f.Kind, f.Swing.Direction)
		}
		t.AppendRow(table.Row{
			o.Symbol,
			fmt.Sprintf("%.2f", o.Analysis.Quote.Price),
			fmt.Sprintf("%+.2f", a.Score),
			a.Sentiment,
			fmt.Sprintf("%.2f", a.Support),
			fmt.Sprintf("%.2f", a.Resistance),
			a.Target.String(),
			fib,
			"",
		})
	}
	t.Render()
}
