package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/dtnitsch/wordfreq/internal/count"
	"github.com/dtnitsch/wordfreq/internal/db"
	"github.com/dtnitsch/wordfreq/internal/generate"
	"github.com/dtnitsch/wordfreq/internal/ingest"
	"github.com/dtnitsch/wordfreq/pkg/generator"
	"github.com/dtnitsch/wordfreq/pkg/help"
	"github.com/urfave/cli/v2"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newApp().RunContext(ctx, os.Args); err != nil {
		slog.New(slog.NewJSONHandler(os.Stderr, nil)).Error("Command failed", "error", err)
		stop()
		os.Exit(1)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "wordfreq",
		Usage: "Count stemmed word frequencies in large text files",
		Commands: []*cli.Command{
			{
				Name:  "quickstart",
				Usage: "Print a YAML quick reference",
				Action: func(c *cli.Context) error {
					_, err := fmt.Fprint(c.App.Writer, help.QuickstartYAML)
					return err
				},
			},
			{
				Name:      "count",
				Usage:     "Count stem frequencies in a corpus file",
				ArgsUsage: "<file>",
				Action:    count.CountAction,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "config",
						Usage: "YAML config file; flags override its values",
					},
					&cli.StringFlag{
						Name:  "chunk-size",
						Usage: "Chunk size, e.g. 1MiB or 65536",
						Value: "1MiB",
					},
					&cli.IntFlag{
						Name:  "workers",
						Usage: "Number of workers (0 = one per CPU)",
					},
					&cli.IntFlag{
						Name:  "top",
						Usage: "Number of rows to print (0 = all)",
						Value: 25,
					},
					&cli.BoolFlag{
						Name:  "skip-stopwords",
						Usage: "Leave common English words out of the ranking",
					},
					&cli.BoolFlag{
						Name:  "detect-language",
						Usage: "Detect the corpus language from a sample",
					},
					&cli.StringFlag{
						Name:  "output",
						Usage: "Write the ranked table to this file",
					},
					&cli.StringFlag{
						Name:  "format",
						Usage: "Output file format: tsv, json or yaml",
						Value: "tsv",
					},
					&cli.StringFlag{
						Name:  "cache-dir",
						Usage: "Cache results here, keyed by corpus and chunk size",
					},
					&cli.StringFlag{
						Name:  "max-age",
						Usage: "Cache freshness threshold (e.g. 1h, 24h)",
						Value: "24h",
					},
					&cli.BoolFlag{
						Name:  "archive",
						Usage: "Record the run in the SQLite archive",
					},
					dbFlag(),
					quietFlag(),
				},
			},
			{
				Name:   "generate",
				Usage:  "Generate a random corpus from dictionary files",
				Action: generate.GenerateAction,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "dict-dir",
						Usage: "Directory of *.txt word lists",
						Value: "Words",
					},
					&cli.IntFlag{
						Name:  "vocab",
						Usage: "Number of 5-word groups to sample",
						Value: generator.DefaultGroups,
					},
					&cli.StringFlag{
						Name:  "size",
						Usage: "Target corpus size, e.g. 20GiB",
						Value: "20GiB",
					},
					&cli.StringFlag{
						Name:  "out",
						Usage: "Output file",
						Value: "large_text.txt",
					},
					&cli.Uint64Flag{
						Name:  "seed",
						Usage: "Random seed (0 = from clock)",
					},
					&cli.BoolFlag{
						Name:  "show-words",
						Usage: "Print the sampled vocabulary",
					},
					&cli.BoolFlag{
						Name:  "force",
						Usage: "Overwrite an existing output file",
					},
					quietFlag(),
				},
			},
			{
				Name:   "ingest",
				Usage:  "Extract readable text from HTML files or pages into a corpus",
				Action: ingest.IngestAction,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "from",
						Usage: "Comma-separated HTML files or glob patterns",
					},
					&cli.StringFlag{
						Name:  "urls",
						Usage: "Comma-separated list of pages to fetch",
					},
					&cli.IntFlag{
						Name:  "workers",
						Usage: "Number of concurrent fetches",
						Value: 4,
					},
					&cli.StringFlag{
						Name:  "cache-dir",
						Usage: "Cache fetched HTML here",
					},
					&cli.StringFlag{
						Name:  "max-age",
						Usage: "Cache freshness threshold (e.g. 1h, 24h)",
						Value: "24h",
					},
					&cli.StringFlag{
						Name:  "out",
						Usage: "Corpus file to append to",
						Value: "corpus.txt",
					},
					&cli.BoolFlag{
						Name:  "truncate",
						Usage: "Overwrite the corpus file instead of appending",
					},
					quietFlag(),
				},
			},
			{
				Name:   "runs",
				Usage:  "List archived runs",
				Action: db.RunsAction,
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:  "limit",
						Usage: "Maximum number of runs to show (0 = all)",
						Value: 20,
					},
					dbFlag(),
				},
			},
			{
				Name:      "run",
				Usage:     "Show an archived run (default: latest)",
				ArgsUsage: "[id]",
				Action:    db.RunAction,
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:  "top",
						Usage: "Number of stems to show (0 = all archived)",
						Value: 25,
					},
					&cli.BoolFlag{
						Name:  "yaml",
						Usage: "Print the run as YAML",
					},
					&cli.BoolFlag{
						Name:  "delete",
						Usage: "Delete the run from the archive",
					},
					dbFlag(),
				},
			},
		},
	}
}

func quietFlag() cli.Flag {
	return &cli.BoolFlag{
		Name:  "quiet",
		Usage: "Only log errors",
	}
}

func dbFlag() cli.Flag {
	return &cli.StringFlag{
		Name:  "db",
		Usage: "Path to the run archive (default: wordfreq.db next to the binary)",
	}
}
