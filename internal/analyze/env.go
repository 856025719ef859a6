package analyze

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/dtnitsch/veritas/internal/config"
	"github.com/dtnitsch/veritas/models"
	"github.com/dtnitsch/veritas/pkg/db"
	"github.com/dtnitsch/veritas/pkg/lexicon"
	"github.com/dtnitsch/veritas/pkg/manifest"
	"github.com/dtnitsch/veritas/pkg/scoring"
	"github.com/dtnitsch/veritas/pkg/signals"
	"github.com/dtnitsch/veritas/pkg/storage"
	"github.com/urfave/cli/v2"
)

// env is the state shared by every command: logger, configuration, the
// assembled core and, when recording, the history database.
type env struct {
	logger    *slog.Logger
	out       io.Writer
	cfg       *config.Config
	lex       *lexicon.Lexicon
	assembler *signals.Assembler
	engine    *scoring.Engine
	store     *storage.Storage
	format    string
	summary   bool
	database  *db.DB
}

func newLogger(c *cli.Context) *slog.Logger {
	logLevel := slog.LevelInfo
	if c.Bool("verbose") {
		logLevel = slog.LevelDebug
	}
	if c.Bool("quiet") {
		logLevel = slog.LevelError
	}
	return slog.New(slog.NewJSONHandler(c.App.ErrWriter, &slog.HandlerOptions{Level: logLevel}))
}

// newEnv loads configuration and builds the core. The database is opened when
// --record is set or needDB is true. Returned errors are cli exit errors.
func newEnv(c *cli.Context, needDB bool) (*env, error) {
	logger := newLogger(c)

	cfg, err := config.Load(c.String("config"))
	if err != nil {
		logger.Error("failed to load config", "error", err)
		return nil, cli.Exit(fmt.Sprintf("Error: %v", err), 1)
	}

	format := strings.ToLower(cfg.Output.Format)
	if c.IsSet("format") {
		format = strings.ToLower(c.String("format"))
	}
	switch format {
	case storage.FormatJSON, storage.FormatYAML:
	case "yml":
		format = storage.FormatYAML
	default:
		return nil, cli.Exit(fmt.Sprintf("Error: unsupported format %q (use json or yaml)", format), 1)
	}

	engine, err := scoring.New(cfg.Scoring)
	if err != nil {
		return nil, cli.Exit(fmt.Sprintf("Error: %v", err), 1)
	}

	lex := cfg.ResolvedLexicon()
	e := &env{
		logger:    logger,
		out:       c.App.Writer,
		cfg:       cfg,
		lex:       lex,
		assembler: signals.New(lex),
		engine:    engine,
		store:     &storage.Storage{},
		format:    format,
		summary:   c.Bool("summary"),
	}

	if needDB || c.Bool("record") {
		dbPath := cfg.DB.Path
		if c.IsSet("db") {
			dbPath = c.String("db")
		}
		e.database, err = db.Open(dbPath)
		if err != nil {
			logger.Error("failed to open database", "error", err)
			return nil, cli.Exit(fmt.Sprintf("Error: %v", err), 2)
		}
		logger.Debug("Database opened", "path", e.database.Path())
	}

	logger.Debug("Configuration loaded", "lexicon_version", lex.Version, "format", format)
	return e, nil
}

func (e *env) close() {
	if e.database != nil {
		_ = e.database.Close()
	}
}

func (e *env) report(res models.AnalysisResult) Report {
	r := Report{Result: res}
	if e.summary {
		r.Summary = manifest.SummarizerInput(res)
	}
	return r
}

// emit writes v to path, or to stdout when path is empty.
func (e *env) emit(v any, path string) error {
	if path != "" {
		if err := e.store.WriteReport(path, v, e.format); err != nil {
			return err
		}
		e.logger.Info("Report written", "path", path)
		return nil
	}
	data, err := storage.Marshal(v, e.format)
	if err != nil {
		return err
	}
	_, err = e.out.Write(data)
	return err
}
