package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/arthur-debert/importsteps/cmd/importsteps"
)

// Writes every shell completion script into the directory given as the only
// argument, for packaging.
func main() {
	if len(os.Args) != 2 {
		fmt.Fprintf(os.Stderr, "Usage: %s <output-dir>\n", os.Args[0])
		os.Exit(1)
	}
	dir := os.Args[1]
	if err := os.MkdirAll(dir, 0755); err != nil {
		fmt.Fprintf(os.Stderr, "Error creating %s: %v\n", dir, err)
		os.Exit(1)
	}

	rootCmd := importsteps.NewRootCmd()
	scripts := map[string]func(path string) error{
		"importsteps.bash": func(path string) error { return rootCmd.GenBashCompletionFileV2(path, true) },
		"_importsteps":     rootCmd.GenZshCompletionFile,
		"importsteps.fish": func(path string) error { return rootCmd.GenFishCompletionFile(path, true) },
		"importsteps.ps1":  rootCmd.GenPowerShellCompletionFileWithDesc,
	}
	for name, gen := range scripts {
		path := filepath.Join(dir, name)
		if err := gen(path); err != nil {
			fmt.Fprintf(os.Stderr, "Error generating %s: %v\n", path, err)
			os.Exit(1)
		}
	}
}
