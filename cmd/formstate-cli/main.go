package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"

	"github.com/goliatone/go-formstate/pkg/binding"
	"github.com/goliatone/go-formstate/pkg/formspec"
	"github.com/goliatone/go-formstate/pkg/prompt"
	"github.com/goliatone/go-formstate/pkg/store"
)

type options struct {
	definition string
	prefill    string
	output     string
	logLevel   string
}

func main() {
	opts, err := parseFlags(os.Args[1:], os.Stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		os.Exit(2)
	}

	logger := newLogger(os.Stderr, opts.logLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	out, err := run(ctx, opts, prompt.NewSurveyDriver(os.Stderr), logger)
	if err != nil {
		if errors.Is(err, prompt.ErrAborted) {
			os.Exit(130)
		}
		logger.Fatal().Err(err).Msg("form failed")
	}

	if opts.output != "" {
		if err := os.WriteFile(opts.output, out, 0o644); err != nil {
			logger.Fatal().Err(err).Str("path", opts.output).Msg("write output")
		}
		fmt.Fprintf(os.Stderr, "Values written to %s\n", opts.output)
		return
	}
	fmt.Println(string(out))
}

func parseFlags(args []string, stderr io.Writer) (options, error) {
	fs := flag.NewFlagSet("formstate-cli", flag.ContinueOnError)
	fs.SetOutput(stderr)

	var opts options
	fs.StringVar(&opts.definition, "definition", "form.yaml", "form definition file (YAML or JSON)")
	fs.StringVar(&opts.prefill, "prefill", "", "JSON document with starting values")
	fs.StringVar(&opts.output, "output", "", "output file (stdout if empty)")
	fs.StringVar(&opts.logLevel, "log-level", "warn", "log level (debug, info, warn, error)")
	if err := fs.Parse(args); err != nil {
		return options{}, err
	}
	if strings.TrimSpace(opts.definition) == "" {
		fmt.Fprintln(stderr, "-definition is required")
		return options{}, errors.New("definition is required")
	}
	return opts, nil
}

func newLogger(w io.Writer, level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.WarnLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: w, TimeFormat: "15:04:05"}).
		Level(lvl).
		With().Timestamp().Logger()
}

// run loads the definition, prompts for every field through driver and
// returns the submitted values as indented JSON.
func run(ctx context.Context, opts options, driver prompt.Driver, logger zerolog.Logger) ([]byte, error) {
	cfg, err := binding.LoadConfig()
	if err != nil {
		return nil, err
	}

	def, err := formspec.LoadFS(os.DirFS(filepath.Dir(opts.definition)), filepath.Base(opts.definition))
	if err != nil {
		return nil, err
	}

	var prefill []byte
	if opts.prefill != "" {
		prefill, err = os.ReadFile(opts.prefill)
		if err != nil {
			return nil, fmt.Errorf("read prefill: %w", err)
		}
	}

	scope := store.NewScope(store.WithLogger(logger))
	defer scope.Close()

	form, err := formspec.Build(def, scope,
		formspec.WithPrefill(prefill),
		formspec.WithLogger(logger),
		formspec.WithBindingOptions(binding.WithConfig(cfg)),
	)
	if err != nil {
		return nil, err
	}

	values, err := prompt.New(prompt.WithDriver(driver), prompt.WithLogger(logger)).Run(ctx, form)
	if err != nil {
		return nil, err
	}
	return json.MarshalIndent(values, "", "  ")
}
