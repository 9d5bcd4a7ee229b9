package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra/doc"

	"github.com/arthur-debert/importsteps/cmd/importsteps"
	"github.com/arthur-debert/importsteps/internal/version"
)

func main() {
	rootCmd := importsteps.NewRootCmd()

	header := &doc.GenManHeader{
		Title:   "IMPORTSTEPS",
		Section: "1",
		Source:  "importsteps " + version.Version,
		Manual:  "importsteps manual",
	}

	if err := doc.GenMan(rootCmd, header, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error generating man page: %v\n", err)
		os.Exit(1)
	}
}
