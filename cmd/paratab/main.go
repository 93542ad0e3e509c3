package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/paratab/paratab"
	internalcli "github.com/paratab/paratab/internal/cli"
)

func main() {
	app := &cli.App{
		Name:  "paratab",
		Usage: "load a CSV file into a column-oriented, type-inferred table",
		Commands: []*cli.Command{
			loadCommand(),
			inspectCommand(),
		},
	}
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "paratab:", err)
		os.Exit(1)
	}
}

func commonFlags() []cli.Flag {
	return []cli.Flag{
		&cli.BoolFlag{Name: "no-header", Usage: "treat the first row as data, not column names"},
		&cli.BoolFlag{Name: "number-only", Usage: "skip quote/escape handling; every field is a bare number or blank"},
		&cli.IntFlag{Name: "threads", Usage: "worker count (default: number of CPUs)"},
		&cli.BoolFlag{Name: "allow-quoted-newlines", Usage: "allow newlines inside quoted fields"},
		&cli.Int64Flag{Name: "file-chunk-size", Usage: "process the file in successive windows of this many bytes"},
		&cli.BoolFlag{Name: "verbose", Aliases: []string{"v"}, Usage: "print a progress banner and summary"},
	}
}

func configFromFlags(c *cli.Context) paratab.Config {
	cfg := paratab.DefaultConfig()
	cfg.NoHeader = c.Bool("no-header")
	cfg.NumberOnly = c.Bool("number-only")
	cfg.AllowQuotedNewlines = c.Bool("allow-quoted-newlines")
	if t := c.Int("threads"); t > 0 {
		cfg.NumThreads = t
	}
	if size := c.Int64("file-chunk-size"); size > 0 {
		cfg.ChunkedFileReading = true
		cfg.FileChunkSize = size
	}
	return cfg
}

func loadCommand() *cli.Command {
	return &cli.Command{
		Name:      "load",
		Usage:     "load a file and print summary statistics for every column",
		ArgsUsage: "<path>",
		Flags:     commonFlags(),
		Action: func(c *cli.Context) error {
			path := c.Args().First()
			if path == "" {
				return cli.Exit("missing <path>", 1)
			}
			cfg := configFromFlags(c)
			reporter := internalcli.NewReporter(c.Bool("verbose"))

			l, err := paratab.Open(path, cfg)
			if err != nil {
				return err
			}
			defer l.Close()

			reporter.Banner(path, len(l.ColumnNames()), cfg.NumThreads)
			reporter.Start()
			start := time.Now()
			table, err := l.Load(context.Background())
			reporter.Stop()
			if err != nil {
				reporter.Error(err)
				return err
			}

			printSummary(table)
			rows := 0
			if table.NumColumns() > 0 {
				rows = table.Size(0)
			}
			reporter.Summary(rows, table.NumColumns(), time.Since(start))
			return nil
		},
	}
}

func inspectCommand() *cli.Command {
	return &cli.Command{
		Name:      "inspect",
		Usage:     "print the inferred schema and row count of every column, with no progress reporting",
		ArgsUsage: "<path>",
		Flags:     commonFlags(),
		Action: func(c *cli.Context) error {
			path := c.Args().First()
			if path == "" {
				return cli.Exit("missing <path>", 1)
			}
			cfg := configFromFlags(c)
			table, err := paratab.Load(context.Background(), path, cfg)
			if err != nil {
				return err
			}
			printSummary(table)
			return nil
		},
	}
}

func printSummary(table *paratab.Table) {
	for i := 0; i < table.NumColumns(); i++ {
		info := table.Column(i)
		switch info.Semantics {
		case paratab.Numeric:
			fmt.Printf("%-24s numeric(%s)  rows=%d\n", info.Name, table.NumericKind(i), table.Size(i))
		case paratab.Categorical:
			fmt.Printf("%-24s categorical  rows=%d  levels=%d\n", info.Name, table.Size(i), len(table.Levels(i)))
		default:
			fmt.Printf("%-24s text         rows=%d\n", info.Name, table.Size(i))
		}
	}
}
