package main

import (
	"fmt"

	"github.com/fwojciec/pagelens"
)

// Run analyzes the page and prints each review.
func (c *CLI) Run(deps *Dependencies) error {
	mode, err := pagelens.ParseMode(c.Mode)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", pagelens.ErrorMessage(err))
		return err
	}

	res, err := deps.Analyzer.Analyze(deps.Ctx, &pagelens.Request{URL: c.URL, Mode: mode})
	if err != nil {
		if ctxErr := deps.Ctx.Err(); ctxErr != nil {
			fmt.Fprintln(deps.Stderr, "interrupted")
			return ctxErr
		}
		fmt.Fprintf(deps.Stderr, "error: %s\n", pagelens.UserMessage(err))
		return err
	}

	for _, a := range res.Analyses() {
		fmt.Fprintln(deps.Stdout, separator)
		fmt.Fprintln(deps.Stdout, a.Mode.Title())
		fmt.Fprintln(deps.Stdout, separator)
		if a.Err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s: %s\n", a.Mode.Title(), pagelens.UserMessage(a.Err))
			fmt.Fprintln(deps.Stdout)
			continue
		}
		fmt.Fprintln(deps.Stdout, a.Text)
		fmt.Fprintln(deps.Stdout)
	}

	return res.Err()
}
