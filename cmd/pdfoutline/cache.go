package main

import (
	"fmt"

	"github.com/fwojciec/pdfoutline"
)

// Run executes the clear-cache command.
func (c *ClearCacheCmd) Run(deps *Dependencies) error {
	if deps.Outlines == nil {
		err := pdfoutline.Errorf(pdfoutline.EINVALID, "cache is disabled")
		fmt.Fprintf(deps.Stderr, "error: %s\n", pdfoutline.ErrorMessage(err))
		return err
	}

	if err := deps.Outlines.DeleteOutlines(deps.Ctx); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", pdfoutline.ErrorMessage(err))
		return err
	}

	fmt.Fprintln(deps.Stdout, "Cleared outline cache")
	return nil
}
