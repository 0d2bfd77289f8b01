// Package main provides the entry point for the rulesync CLI.
package main

import (
	"context"
	"os"

	"github.com/ruleforge/rulesync/internal/cli"
)

// Build information, set via ldflags.
var (
	version = "dev"     //nolint:gochecknoglobals // set by -ldflags
	commit  = "none"    //nolint:gochecknoglobals // set by -ldflags
	date    = "unknown" //nolint:gochecknoglobals // set by -ldflags
)

func main() {
	ctx := context.Background()

	err := cli.Execute(ctx, cli.BuildInfo{
		Version: version,
		Commit:  commit,
		Date:    date,
	})
	cli.CloseLogFile()
	os.Exit(cli.ExitCodeForError(err))
}
