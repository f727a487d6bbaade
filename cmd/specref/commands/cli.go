package commands

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/specref/internal/config"
	"git.home.luguber.info/inful/specref/internal/logfields"
)

// DefaultConfigFile is read from the working directory when --config is not given.
const DefaultConfigFile = "specref.yaml"

// Global carries process state shared by all commands.
type Global struct {
	Logger *slog.Logger
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer // log output
}

// CLI definition & global flags.
type CLI struct {
	Config  string           `short:"c" help:"Configuration file path (default: ./specref.yaml when present)" env:"SPECREF_CONFIG" type:"path"`
	Verbose bool             `short:"v" help:"Enable verbose logging"`
	Version kong.VersionFlag `name:"version" help:"Show version and exit"`

	Enrich  EnrichCmd  `cmd:"" help:"Enrich a single document"`
	Convert ConvertCmd `cmd:"" help:"Convert and enrich every document in a directory"`
	Refs    RefsCmd    `cmd:"" help:"List the cross-references recognised in a document"`
	Verify  VerifyCmd  `cmd:"" help:"Check anchor links in enriched output"`
	Watch   WatchCmd   `cmd:"" help:"Rebuild the corpus whenever inputs change"`
	Init    InitCmd    `cmd:"" help:"Write an example configuration file"`
}

// NewParser builds the kong parser with g and ctx available to every command.
func NewParser(ctx context.Context, cli *CLI, g *Global, opts ...kong.Option) (*kong.Kong, error) {
	base := []kong.Option{
		kong.Name("specref"),
		kong.Description("Link table of contents entries, clause headings and cross-references in 3GPP specification HTML."),
		kong.UsageOnError(),
		kong.Bind(g, cli),
		kong.BindTo(ctx, (*context.Context)(nil)),
	}
	return kong.New(cli, append(base, opts...)...)
}

// AfterApply runs after flag parsing; logging starts at the verbosity given on
// the command line and is refined once configuration is loaded.
func (c *CLI) AfterApply(g *Global) error {
	if g.Stderr == nil {
		g.Stderr = os.Stderr
	}
	level := slog.LevelInfo
	if c.Verbose {
		level = slog.LevelDebug
	}
	g.Logger = newLogger(g.Stderr, level, config.LogFormatText)
	slog.SetDefault(g.Logger)
	return nil
}

// load reads configuration, applies command-line overrides and re-validates.
func (c *CLI) load(g *Global, override func(*config.Config)) (*config.Config, error) {
	path := c.Config
	if path == "" {
		if _, err := os.Stat(DefaultConfigFile); err == nil {
			path = DefaultConfigFile
		}
	}

	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	if override != nil {
		override(cfg)
		if err := cfg.Normalize(); err != nil {
			return nil, err
		}
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
	}

	level := cfg.Logging.Level.SlogLevel()
	if c.Verbose {
		level = slog.LevelDebug
	}
	g.Logger = newLogger(g.Stderr, level, cfg.Logging.Format)
	slog.SetDefault(g.Logger)
	if path != "" {
		g.Logger.Debug("Configuration loaded", logfields.Path(path))
	}
	return cfg, nil
}

func newLogger(w io.Writer, level slog.Level, format config.LogFormat) *slog.Logger {
	opts := &slog.HandlerOptions{Level: level}
	if format == config.LogFormatJSON {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}
