package main

import (
	"fmt"
	"os"

	"github.com/arthur-debert/importsteps/cmd/importsteps"
	"github.com/arthur-debert/importsteps/pkg/errors"
	"github.com/arthur-debert/importsteps/pkg/ui/styles"
)

func main() {
	if err := importsteps.NewRootCmd().Execute(); err != nil {
		msg := styles.GetStyle("Error").Render(fmt.Sprintf("Error: %v", err))
		_, _ = fmt.Fprintln(os.Stderr, msg)
		os.Exit(exitCode(err))
	}
}

// exitCode is 2 for bad invocations and 1 for everything else
func exitCode(err error) int {
	if errors.IsErrorCode(err, errors.ErrInvalidInput) {
		return 2
	}
	return 1
}
