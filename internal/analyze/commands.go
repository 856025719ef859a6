package analyze

import (
	"github.com/urfave/cli/v2"
)

// GlobalFlags apply to every command.
func GlobalFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:  "config",
			Usage: "YAML config file (default: ./veritas.yaml when present)",
		},
		&cli.StringFlag{
			Name:  "format",
			Usage: "output format: json or yaml (overrides output.format)",
		},
		&cli.BoolFlag{
			Name:  "summary",
			Usage: "include the summarizer signal map in each report",
		},
		&cli.BoolFlag{
			Name:  "record",
			Usage: "store results in the history database",
		},
		&cli.StringFlag{
			Name:  "db",
			Usage: "history database path (overrides db.path)",
		},
		&cli.BoolFlag{
			Name:    "quiet",
			Aliases: []string{"q"},
			Usage:   "only log errors",
		},
		&cli.BoolFlag{
			Name:  "verbose",
			Usage: "log debug detail",
		},
	}
}

func outFlag(usage string) cli.Flag {
	return &cli.StringFlag{Name: "out", Aliases: []string{"o"}, Usage: usage}
}

// Commands returns every veritas subcommand.
func Commands() []*cli.Command {
	return []*cli.Command{
		{
			Name:      "url",
			Usage:     "fetch pages and score their credibility",
			ArgsUsage: "[url...]",
			Action:    URLAction,
			Flags: []cli.Flag{
				&cli.StringFlag{Name: "urls", Aliases: []string{"u"}, Usage: "comma-separated list of URLs"},
				&cli.IntFlag{Name: "workers", Aliases: []string{"w"}, Usage: "concurrent workers (overrides fetch.workers)"},
				&cli.BoolFlag{Name: "no-cache", Usage: "always fetch from the network"},
				&cli.StringFlag{Name: "cache-dir", Usage: "raw HTML cache directory (overrides fetch.cache_dir)"},
				&cli.BoolFlag{Name: "prune-cache", Usage: "remove expired cache entries before fetching"},
				outFlag("directory for per-URL reports and the run manifest"),
			},
		},
		{
			Name:   "file",
			Usage:  "score saved markup",
			Action: FileAction,
			Flags: []cli.Flag{
				&cli.StringFlag{Name: "path", Aliases: []string{"p"}, Usage: "HTML file", Required: true},
				&cli.StringFlag{Name: "url", Usage: "address the page was fetched from", Required: true},
				outFlag("report file"),
			},
		},
		{
			Name:   "text",
			Usage:  "score pasted text",
			Action: TextAction,
			Flags: []cli.Flag{
				&cli.StringFlag{Name: "path", Aliases: []string{"p"}, Usage: "text file"},
				&cli.BoolFlag{Name: "stdin", Usage: "read text from standard input"},
				outFlag("report file"),
			},
		},
		{
			Name:   "score",
			Usage:  "rescore a serialized AnalysisData record (json or yaml)",
			Action: ScoreAction,
			Flags: []cli.Flag{
				&cli.StringFlag{Name: "path", Aliases: []string{"p"}, Usage: "AnalysisData file", Required: true},
				outFlag("report file"),
			},
		},
		{
			Name:   "history",
			Usage:  "list stored analyses",
			Action: HistoryAction,
			Flags: []cli.Flag{
				&cli.IntFlag{Name: "limit", Aliases: []string{"n"}, Value: 20, Usage: "maximum rows (0 for all)"},
				&cli.StringFlag{Name: "url", Usage: "only analyses of this URL"},
				&cli.BoolFlag{Name: "runs", Usage: "include recent runs"},
				&cli.IntFlag{Name: "tags", Value: 0, Usage: "include the N most frequent modifier tags"},
				outFlag("output file"),
			},
		},
		{
			Name:   "quickstart",
			Usage:  "print a quick-start guide",
			Action: QuickstartAction,
		},
	}
}

// NewApp assembles the veritas CLI.
func NewApp() *cli.App {
	return &cli.App{
		Name:                 "veritas",
		Usage:                "score the credibility of web pages and pasted text",
		Flags:                GlobalFlags(),
		Commands:             Commands(),
		EnableBashCompletion: true,
	}
}
