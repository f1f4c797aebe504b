package main

import (
	"bufio"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/mcnijman/go-emailaddress"

	"github.com/optimode/emailschema"
	"github.com/optimode/emailschema/internal/config"
	"github.com/optimode/emailschema/internal/logger"
	"github.com/optimode/emailschema/schema"
	"github.com/optimode/emailschema/validation"
)

const (
	exitOK      = 0
	exitInvalid = 1
	exitUsage   = 2
)

// result is one line of output.
type result struct {
	Input      string `json:"input"`
	Valid      bool   `json:"valid"`
	Normalized string `json:"normalized,omitempty"`
	ASCIIEmail string `json:"ascii_email,omitempty"`
	MXHost     string `json:"mx_host,omitempty"`
	ErrorType  string `json:"error_type,omitempty"`
	Error      string `json:"error,omitempty"`
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(stderr, "emailcheck: %v\n", err)
		return exitUsage
	}

	fs := flag.NewFlagSet("emailcheck", flag.ContinueOnError)
	fs.SetOutput(stderr)
	schemaPath := fs.String("schema", cfg.SchemaFile, "path to YAML email schema (optional)")
	strict := fs.Bool("strict", cfg.Strict, "ambient strict default")
	extract := fs.Bool("extract", false, "find addresses in free text on stdin")
	workers := fs.Int("workers", cfg.Workers, "number of concurrent validations")
	if err := fs.Parse(args); err != nil {
		return exitUsage
	}
	cfg.Strict = *strict

	log, err := newLogger(cfg, stderr)
	if err != nil {
		fmt.Fprintf(stderr, "emailcheck: %v\n", err)
		return exitUsage
	}

	s := schema.Dict{"type": emailschema.ExpectedType}
	if *schemaPath != "" {
		if s, err = schema.LoadFile(*schemaPath); err != nil {
			log.Error("failed to load schema", logger.Error(err), slog.String("path", *schemaPath))
			return exitUsage
		}
	}

	v, err := emailschema.NewBuilder().
		WithDNS(emailschema.DNSOptions{
			Timeout:     cfg.DNSTimeout,
			CacheTTL:    cfg.DNSTTL,
			FallbackToA: cfg.FallbackA,
		}).
		WithLogger(log).
		Build(s, cfg.Ambient())
	if err != nil {
		log.Error("invalid schema", logger.Error(err))
		return exitUsage
	}

	addrs := fs.Args()
	if len(addrs) == 0 {
		if addrs, err = readInputs(stdin, *extract); err != nil {
			log.Error("failed to read stdin", logger.Error(err))
			return exitUsage
		}
	}

	inputs := make([]any, len(addrs))
	for i, a := range addrs {
		inputs[i] = a
	}

	log.Debug("validating", slog.Int("count", len(inputs)), slog.Any("config", v.Config()))
	outcomes := v.ValidateMany(ctx, inputs, emailschema.ConcurrencyOptions{Workers: *workers})

	enc := json.NewEncoder(stdout)
	enc.SetEscapeHTML(false)
	failed := 0
	for i, o := range outcomes {
		r := toResult(addrs[i], o)
		if !r.Valid {
			failed++
			log.Debug("invalid address", logger.Email(addrs[i]), logger.Error(o.Err))
		}
		if err := enc.Encode(r); err != nil {
			log.Error("failed to write result", logger.Error(err))
			return exitUsage
		}
	}

	log.Info("done", slog.Int("checked", len(outcomes)), slog.Int("invalid", failed))
	if failed > 0 {
		return exitInvalid
	}
	return exitOK
}

func newLogger(cfg config.Config, w io.Writer) (*slog.Logger, error) {
	level, err := logger.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	return logger.New(
		logger.WithLevel(level),
		logger.WithFormat(logger.Format(cfg.LogFormat)),
		logger.WithOutput(w),
	)
}

// readInputs reads one address per non-empty line, or with extract set,
// every address-looking substring of the text, deduplicated in order.
func readInputs(r io.Reader, extract bool) ([]string, error) {
	if extract {
		body, err := io.ReadAll(r)
		if err != nil {
			return nil, err
		}
		seen := make(map[string]bool)
		var out []string
		for _, e := range emailaddress.Find(body, false) {
			if s := e.String(); !seen[s] {
				seen[s] = true
				out = append(out, s)
			}
		}
		return out, nil
	}

	var out []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		if line := strings.TrimSpace(sc.Text()); line != "" {
			out = append(out, line)
		}
	}
	return out, sc.Err()
}

func toResult(in string, o emailschema.Outcome) result {
	r := result{Input: in, Valid: o.Valid()}
	if r.Valid {
		r.Normalized = o.Email.Normalized
		r.ASCIIEmail = o.Email.ASCIIEmail
		r.MXHost = o.Email.MXHost
		return r
	}
	if ve, ok := validation.AsError(o.Err); ok {
		r.ErrorType = string(ve.Type)
		r.Error = ve.Message
		return r
	}
	r.Error = o.Err.Error()
	return r
}
