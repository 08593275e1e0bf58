// Command pandocmd is a thin demonstration CLI: it reads either
// Pandoc-flavor Markdown or a Pandoc JSON AST (the wire format used by
// Pandoc filters, "pandoc -t json | filter | pandoc -f json -t ...")
// from a file or stdin, and writes the resulting document back out
// through an external pandoc process in whatever format the user
// asked for. It exists to exercise the markdown package's
// configuration and logging, and the JSON codec's reader, end to end
// — not as a production tool in its own right.
package main

import (
	"bytes"
	"flag"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"

	"github.com/gopandoc/pandoc"
	"github.com/gopandoc/pandoc/markdown"
)

func main() {
	var (
		configPath = flag.String("config", "", "path to a YAML configuration file")
		from       = flag.String("from", "", `input format: "markdown" (default) or "json" (a Pandoc filter AST); overrides the config file`)
		to         = flag.String("to", "", "output format (passed to pandoc -t); overrides the config file")
		pandocPath = flag.String("pandoc", "", "path to the pandoc executable; overrides the config file")
		tabStop    = flag.Int("tabstop", 0, "tab stop width; overrides the config file")
		columns    = flag.Int("columns", 0, "table width budget in columns; overrides the config file")
		strict     = flag.Bool("strict", false, "restrict to the plain Markdown.pl-compatible subset")
		smart      = flag.Bool("smart", false, "enable smart typography")
		parseRaw   = flag.Bool("parseraw", false, "keep raw HTML/LaTeX instead of dropping it")
		verbose    = flag.Bool("v", false, "enable development logging (debug level, human readable)")
	)
	flag.Parse()

	logger, err := newLogger(*verbose)
	if err != nil {
		fmt.Fprintln(os.Stderr, "pandocmd: logger setup failed:", err)
		os.Exit(1)
	}
	defer logger.Sync()

	if err := run(*configPath, *from, *to, *pandocPath, *tabStop, *columns, *strict, *smart, *parseRaw, logger); err != nil {
		logger.Error("pandocmd: run failed", zap.Error(err))
		os.Exit(1)
	}
}

func newLogger(verbose bool) (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

func run(configPath, from, to, pandocPath string, tabStop, columns int, strict, smart, parseRaw bool, logger *zap.Logger) error {
	fc, err := loadFileConfig(configPath)
	if err != nil {
		return fmt.Errorf("pandocmd: reading config %q: %w", configPath, err)
	}

	cfg := markdown.Config{
		TabStop:  firstNonZero(tabStop, fc.TabStop),
		Columns:  firstNonZero(columns, fc.Columns),
		Strict:   strict || fc.Strict,
		Smart:    smart || fc.Smart,
		ParseRaw: parseRaw || fc.ParseRaw,
		Logger:   logger,
	}

	inputFormat := from
	if inputFormat == "" {
		inputFormat = fc.From
	}
	if inputFormat == "" {
		inputFormat = "markdown"
	}

	format := to
	if format == "" {
		format = fc.To
	}
	if format == "" {
		format = "html"
	}
	pandocExe := pandocPath
	if pandocExe == "" {
		pandocExe = fc.Pandoc
	}

	var src []byte
	args := flag.Args()
	switch len(args) {
	case 0:
		src, err = io.ReadAll(os.Stdin)
	case 1:
		src, err = os.ReadFile(args[0])
	default:
		return fmt.Errorf("pandocmd: expected at most one input file, got %d", len(args))
	}
	if err != nil {
		return fmt.Errorf("pandocmd: reading input: %w", err)
	}

	var doc *pandoc.Pandoc
	switch inputFormat {
	case "markdown":
		doc, err = markdown.ReadString(cfg, string(src))
		if err != nil {
			return fmt.Errorf("pandocmd: parsing markdown input: %w", err)
		}
	case "json":
		logger.Debug("pandocmd: decoding Pandoc JSON AST")
		doc, err = pandoc.ReadFrom(bytes.NewReader(src))
		if err != nil {
			return fmt.Errorf("pandocmd: decoding JSON input: %w", err)
		}
	default:
		return fmt.Errorf("pandocmd: unknown input format %q (want \"markdown\" or \"json\")", inputFormat)
	}

	conf := pandoc.Format(format).WithPandoc(pandocExe)
	if cfg.Smart {
		conf = conf.WithExt("smart")
	}
	if err := doc.StoreTo(os.Stdout, conf); err != nil {
		return fmt.Errorf("pandocmd: rendering output: %w", err)
	}
	return nil
}

func firstNonZero(a, b int) int {
	if a != 0 {
		return a
	}
	return b
}

