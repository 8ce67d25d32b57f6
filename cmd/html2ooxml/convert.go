package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	flag "github.com/spf13/pflag"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	html2ooxml "github.com/alnah/go-html2ooxml"
	"github.com/alnah/go-html2ooxml/internal/config"
	"github.com/alnah/go-html2ooxml/internal/fileutil"
	"github.com/alnah/go-html2ooxml/internal/hints"
)

// ErrInvalidFlags wraps flag parsing errors.
var ErrInvalidFlags = errors.New("invalid arguments")

// runConvertCmd parses flags, resolves configuration and converts the input.
// Precedence: CLI flags > environment > config file > defaults.
func runConvertCmd(ctx context.Context, args []string, env *Environment) error {
	flags, positionalArgs, err := parseConvertFlags(args, env)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return err
		}
		return fmt.Errorf("%w: %v", ErrInvalidFlags, err)
	}

	// Validate worker count early
	if err := validateWorkers(flags.workers); err != nil {
		return err
	}

	envCfg := loadEnvConfig(env.Getenv)
	cfg, err := loadConfig(flags.common.config, envCfg.ConfigPath)
	if err != nil {
		return err
	}
	applyEnvConfig(envCfg, cfg)
	mergeFlags(flags, cfg)

	// Flags bypass LoadConfig validation
	if err := cfg.Validate(); err != nil {
		return err
	}

	log := newLogger(cfg, flags.common.quiet, env)
	defer func() { _ = log.Sync() }()
	warnUnknownEnvVars(env.Environ(), log)

	return runConvert(ctx, positionalArgs, flags, cfg, log, env)
}

// runConvert orchestrates the conversion process.
func runConvert(ctx context.Context, positionalArgs []string, flags *convertFlags, cfg *config.Config, log *zap.Logger, env *Environment) error {
	opts := buildOptions(cfg, log)
	params := &conversionParams{
		skipWrap:          cfg.Conversion.SkipWrap,
		writeHTML:         cfg.Output.WriteHTML,
		continueNumbering: cfg.Numbering.Continue,
	}

	if len(positionalArgs) > 0 && positionalArgs[0] == stdinPath {
		return convertStdin(ctx, flags, params, opts, env)
	}

	inputPath, err := resolveInputPath(positionalArgs, cfg)
	if err != nil {
		return err
	}
	outputDir := resolveOutputDir(flags.output, cfg)

	files, err := discoverFiles(inputPath, outputDir)
	if err != nil {
		return fmt.Errorf("discovering files: %w", err)
	}

	workers := cfg.Workers
	if params.continueNumbering {
		workers = 1
	}
	pool, err := html2ooxml.NewConverterPool(html2ooxml.ResolvePoolSize(workers), opts...)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrConverterInit, err)
	}
	defer pool.Close()

	log.Debug("Converting",
		zap.String("input", inputPath),
		zap.Int("files", len(files)),
		zap.Int("workers", pool.Size()))

	results := convertBatch(ctx, &poolAdapter{pool: pool}, files, params)
	return reportResults(results, log)
}

// convertStdin converts standard input. The fragment goes to -o when set,
// otherwise to standard output.
func convertStdin(ctx context.Context, flags *convertFlags, params *conversionParams, opts []html2ooxml.Option, env *Environment) error {
	content, err := io.ReadAll(env.Stdin)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrReadInput, err)
	}

	conv, err := html2ooxml.NewConverter(opts...)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrConverterInit, err)
	}

	input := html2ooxml.Input{SkipWrap: params.skipWrap}
	if flags.conversion.markdown {
		input.Markdown = string(content)
	} else {
		input.HTML = string(content)
	}

	res, err := conv.Convert(ctx, input)
	if err != nil {
		return err
	}

	if flags.output == "" {
		_, err := io.WriteString(env.Stdout, res.Fragment)
		return err
	}

	if dir := filepath.Dir(flags.output); dir != "." {
		if err := os.MkdirAll(dir, dirPermissions); err != nil {
			return fmt.Errorf("%w: %v", ErrCreateOutputDir, err)
		}
	}
	if err := fileutil.WriteFileAtomic(flags.output, []byte(res.Fragment), filePermissions); err != nil {
		return fmt.Errorf("%w: %v", ErrWriteFragment, err)
	}
	return nil
}

// loadConfig loads the config named by the flag, else by the environment,
// else returns the defaults.
func loadConfig(flagConfig, envConfig string) (*config.Config, error) {
	name := flagConfig
	if name == "" {
		name = envConfig
	}
	if name == "" {
		return config.DefaultConfig(), nil
	}

	cfg, err := config.LoadConfig(name)
	if errors.Is(err, config.ErrConfigNotFound) {
		return nil, fmt.Errorf("loading config: %w%s", err, hints.ForConfigNotFound(config.SearchPaths(name)))
	}
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return cfg, nil
}

// mergeFlags merges CLI flags into config. CLI values override config values.
func mergeFlags(flags *convertFlags, cfg *config.Config) {
	if flags.workers > 0 {
		cfg.Workers = flags.workers
	}
	if flags.html {
		cfg.Output.WriteHTML = true
	}

	// Style flags
	if flags.styles.paragraph != "" {
		cfg.Styles.Paragraph = flags.styles.paragraph
	}
	if flags.styles.list != "" {
		cfg.Styles.List = flags.styles.list
	}

	// Numbering flags
	if flags.numbering.start != 0 {
		cfg.Numbering.Start = flags.numbering.start
	}
	if flags.numbering.continues {
		cfg.Numbering.Continue = true
	}

	// Conversion flags
	if flags.conversion.skipWrap {
		cfg.Conversion.SkipWrap = true
	}
	if flags.conversion.noSanitize {
		cfg.Conversion.Sanitize = false
	}
	if flags.conversion.noInlineStyles {
		cfg.Conversion.InlineStyles = false
	}

	if flags.common.verbose {
		cfg.Logging.Level = config.LogLevelDebug
	}
}

// newLogger builds the console logger. Quiet keeps errors only.
func newLogger(cfg *config.Config, quiet bool, env *Environment) *zap.Logger {
	log := cfg.Logging.Prepare(env.Stdout, env.Stderr)
	if quiet {
		log = log.WithOptions(zap.IncreaseLevel(zapcore.ErrorLevel))
	}
	return log
}

// buildOptions translates configuration into converter options.
func buildOptions(cfg *config.Config, log *zap.Logger) []html2ooxml.Option {
	opts := []html2ooxml.Option{html2ooxml.WithLogger(log)}

	if cfg.Styles.Paragraph != "" {
		opts = append(opts, html2ooxml.WithParagraphStyle(cfg.Styles.Paragraph))
	}
	if cfg.Styles.List != "" {
		opts = append(opts, html2ooxml.WithListStyle(cfg.Styles.List))
	}
	if cfg.Numbering.Start > 0 {
		opts = append(opts, html2ooxml.WithNumberingStart(cfg.Numbering.Start))
	}
	if cfg.Conversion.Sanitize {
		opts = append(opts, html2ooxml.WithSanitizer())
	}
	if !cfg.Conversion.InlineStyles {
		opts = append(opts, html2ooxml.WithStylist(nil))
	}

	return opts
}

// resolveInputPath determines the input path from args or config.
func resolveInputPath(args []string, cfg *config.Config) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	if cfg.Input.DefaultDir != "" {
		return cfg.Input.DefaultDir, nil
	}
	return "", ErrNoInput
}

// resolveOutputDir determines the output directory from flag or config.
func resolveOutputDir(flagOutput string, cfg *config.Config) string {
	if flagOutput != "" {
		return flagOutput
	}
	return cfg.Output.DefaultDir
}

// formatError renders err for the terminal, one line per combined error,
// with hints for the failures users can act on.
func formatError(err error) string {
	errs := multierr.Errors(err)
	lines := make([]string, 0, len(errs))
	for _, e := range errs {
		lines = append(lines, "error: "+e.Error()+hintFor(e))
	}
	return strings.Join(lines, "\n")
}

// hintFor returns the hint matching err, or "".
func hintFor(err error) string {
	switch {
	case errors.Is(err, html2ooxml.ErrInvalidStyleID):
		return hints.ForStyleID()
	case errors.Is(err, html2ooxml.ErrInvalidNumberingStart):
		return hints.ForNumbering()
	case errors.Is(err, ErrInvalidExtension):
		return hints.ForUnsupportedInput(supportedExtensions())
	}
	return ""
}
