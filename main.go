package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	dbactions "github.com/dtnitsch/docmeta/internal/db"
	"github.com/dtnitsch/docmeta/internal/process"
	"github.com/dtnitsch/docmeta/models"
)

func main() {
	app := &cli.App{
		Name:    "docmeta",
		Usage:   "generate metadata records for documents (txt, md, pdf, docx, html)",
		Version: models.Version,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "path to YAML config file",
				Value:   "config.yaml",
			},
			&cli.StringFlag{
				Name:  "output-dir",
				Usage: "directory for metadata records (default: next to each document)",
			},
			&cli.StringFlag{
				Name:  "db",
				Usage: "path to the run-history SQLite database (default: next to the binary)",
			},
			&cli.BoolFlag{
				Name:  "no-db",
				Usage: "skip recording run history",
			},
			&cli.BoolFlag{
				Name:    "quiet",
				Aliases: []string{"q"},
				Usage:   "only log errors",
			},
			&cli.BoolFlag{
				Name:  "verbose",
				Usage: "enable debug logging",
			},
		},
		Commands: []*cli.Command{
			{
				Name:      "file",
				Usage:     "process a single document",
				ArgsUsage: "<path>",
				Action:    process.FileAction,
			},
			{
				Name:      "directory",
				Aliases:   []string{"dir"},
				Usage:     "process every supported document in a directory",
				ArgsUsage: "<path>",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:    "recursive",
						Aliases: []string{"r"},
						Usage:   "descend into subdirectories",
					},
					&cli.StringFlag{
						Name:  "summary",
						Usage: "write a YAML batch summary to this path",
					},
				},
				Action: process.DirectoryAction,
			},
			{
				Name:      "files",
				Usage:     "process an explicit list of documents",
				ArgsUsage: "<path>...",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "files",
						Usage: "comma-separated file list (alternative to arguments)",
					},
					&cli.StringFlag{
						Name:  "summary",
						Usage: "write a YAML batch summary to this path",
					},
				},
				Action: process.FilesAction,
			},
			{
				Name:   "formats",
				Usage:  "list supported document formats",
				Action: process.FormatsAction,
			},
			{
				Name:  "db",
				Usage: "inspect run history",
				Subcommands: []*cli.Command{
					{
						Name:  "runs",
						Usage: "list recent processing runs",
						Flags: []cli.Flag{
							&cli.IntFlag{
								Name:  "limit",
								Usage: "maximum runs to show",
								Value: 20,
							},
						},
						Action: dbactions.RunsAction,
					},
					{
						Name:      "docs",
						Usage:     "show per-document results for a run (latest if omitted)",
						ArgsUsage: "[run-id]",
						Action:    dbactions.DocsAction,
					},
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
