// Package main is the entry point for ai-news-daily
package main

import (
	"errors"
	"os"

	_ "time/tzdata"

	"github.com/Yaz-U/ai-news-daily/cmd"
	"github.com/Yaz-U/ai-news-daily/utils/output"
)

// version is set at build time via ldflags
var version = "dev"

func main() {
	cmd.SetVersion(version)
	if err := cmd.Execute(); err != nil {
		var cliErr *output.CLIError
		if errors.As(err, &cliErr) {
			output.NewPrinter(output.ColorAuto).FormatError(cliErr)
		} else {
			os.Stderr.WriteString("Error: " + err.Error() + "\n")
		}
		os.Exit(output.ExitCodeFor(err))
	}
}
