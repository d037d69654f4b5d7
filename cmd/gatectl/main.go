package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/danmuck/mediagate/internal/config"
	"github.com/danmuck/mediagate/internal/manifest"
	"github.com/danmuck/mediagate/internal/observability"
	"github.com/danmuck/mediagate/internal/selection"
	"github.com/danmuck/mediagate/internal/server"
	"github.com/danmuck/mediagate/internal/token"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type options struct {
	mode     string
	config   string
	class    string
	method   string
	protocol string
	fields   string
	kind     string
	output   string
	force    bool
}

func main() {
	opts := parseFlags()
	logger := observability.InitLogger("gatectl")
	if err := run(context.Background(), opts, os.Stdout, logger); err != nil {
		log.Fatal().Err(err).Str("mode", opts.mode).Msg("gatectl failed")
	}
}

func parseFlags() options {
	var opts options
	flag.StringVar(&opts.mode, "mode", "plan", "mode: list | evaluate | plan | serve | template | validate")
	flag.StringVar(&opts.config, "config", "gate.toml", "gate config path")
	flag.StringVar(&opts.class, "class", "", "test class (evaluate mode)")
	flag.StringVar(&opts.method, "method", "", "test method (evaluate mode)")
	flag.StringVar(&opts.protocol, "protocol", "", "offered delivery protocol (evaluate mode)")
	flag.StringVar(&opts.fields, "fields", "", `available metadata fields joined with "&&" (evaluate mode)`)
	flag.StringVar(&opts.kind, "kind", "gate", "template kind: gate | declarations | content")
	flag.StringVar(&opts.output, "output", "", "template output path (defaults to <kind>.toml)")
	flag.BoolVar(&opts.force, "force", false, "overwrite an existing template")
	flag.Parse()
	return opts
}

func run(ctx context.Context, opts options, out io.Writer, logger zerolog.Logger) error {
	if opts.mode == "template" {
		return writeTemplate(opts, out)
	}

	cfg, err := config.LoadGateConfig(opts.config)
	if err != nil {
		return err
	}
	logger.Info().Str("path", opts.config).Str("name", cfg.Name).Msg("loaded gate config")

	decl, err := manifest.LoadDeclarations(cfg.Declarations)
	if err != nil {
		return err
	}
	var content []selection.Candidate
	if cfg.Content != "" {
		content, err = manifest.LoadContent(cfg.Content)
		if err != nil {
			return err
		}
	}
	engine := selection.NewEngine(selection.Config{Workers: cfg.Workers}, logger)

	switch opts.mode {
	case "validate":
		fmt.Fprintf(out, "Validated %s: %d tests, %d content candidates\n", opts.config, len(decl.Tests()), len(content))
		return nil
	case "list":
		for _, test := range decl.Tests() {
			fmt.Fprintln(out, test.Effective.String())
		}
		return nil
	case "evaluate":
		return evaluate(opts, decl, engine, out)
	case "plan":
		return plan(ctx, decl, content, engine, out)
	case "serve":
		srv := server.New(cfg.Name, cfg.Addr, cfg.CorsOrigins, decl, content, engine)
		return srv.Serve()
	default:
		return fmt.Errorf("unknown mode %q", opts.mode)
	}
}

func evaluate(opts options, decl *manifest.Declarations, engine *selection.Engine, out io.Writer) error {
	if opts.class == "" || opts.method == "" || opts.protocol == "" {
		return fmt.Errorf("evaluate requires -class, -method and -protocol")
	}
	test, err := decl.Lookup(opts.class, opts.method)
	if err != nil {
		return err
	}
	d := engine.Evaluate(test, selection.Candidate{
		ID:       "cli",
		Protocol: opts.protocol,
		Fields:   token.ParseFields(opts.fields),
	})
	fmt.Fprintf(out, "%s\t%s\n", test.ID, d.Result)
	return nil
}

func plan(
	ctx context.Context,
	decl *manifest.Declarations,
	content []selection.Candidate,
	engine *selection.Engine,
	out io.Writer,
) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	decisions, err := engine.Plan(ctx, decl.Tests(), content)
	if err != nil {
		return err
	}
	for _, d := range decisions {
		fmt.Fprintf(out, "%s\t%s\t%s\n", d.TestID, d.CandidateID, d.Result)
	}
	s := selection.Summarize(decisions)
	fmt.Fprintf(out, "total=%d eligible=%d protocol_mismatch=%d missing_metadata=%d\n",
		s.Total, s.Eligible, s.ProtocolMismatch, s.MissingMetadata)
	return nil
}

func writeTemplate(opts options, out io.Writer) error {
	target := opts.output
	if target == "" {
		target = opts.kind + ".toml"
	}
	if err := config.WriteTemplate(target, opts.kind, opts.force); err != nil {
		return err
	}
	fmt.Fprintf(out, "Wrote %s template to %s\n", opts.kind, target)
	return nil
}
