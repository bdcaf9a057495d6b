// Package cli implements sidelinectl: one binding per invocation, results
// as indented JSON on stdout, logs on stderr.
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/gobwas/glob"
	"github.com/okian/sideline/internal/adapters/batch"
	"github.com/okian/sideline/internal/adapters/http/transport"
	"github.com/okian/sideline/internal/app"
	"github.com/okian/sideline/internal/config"
	"github.com/okian/sideline/internal/domain/binding"
	"github.com/okian/sideline/pkg/logger"
	"github.com/pkg/errors"
	"github.com/spf13/cast"
	"github.com/spf13/pflag"
)

// Exit codes.
const (
	ExitOK     = 0
	ExitFailed = 1
	ExitUsage  = 2
)

const name = "sidelinectl"

// Ids are plain decimals. cast alone would read 010 as octal and 12.0 as 12.
var idPattern = regexp.MustCompile(`^[1-9][0-9]*$`)

type options struct {
	configPath string
	baseURL    string
	profile    string
	token      string
	timeout    time.Duration
	workers    int
	data       string
	verbose    bool
	list       bool
}

// Run parses args, performs one operation and returns the exit code.
func Run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	fs, opts := newFlagSet(stderr)
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return ExitOK
		}
		return ExitUsage
	}

	if err := logger.InitWithWriter(stderr); err != nil {
		fmt.Fprintf(stderr, "%s: %v\n", name, err)
		return ExitFailed
	}

	if opts.list {
		if err := printTable(stdout, fs.Args()); err != nil {
			fmt.Fprintf(stderr, "%s: %v\n", name, err)
			return ExitUsage
		}
		return ExitOK
	}

	cfg, err := loadConfig(ctx, fs, opts)
	if err != nil {
		fmt.Fprintf(stderr, "%s: %v\n", name, err)
		return ExitUsage
	}
	if opts.verbose {
		cfg.LogLevel = "debug"
	}
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		fmt.Fprintf(stderr, "%s: %v\n", name, err)
		return ExitUsage
	}

	if fs.NArg() == 0 {
		fs.Usage()
		return ExitUsage
	}
	op := fs.Arg(0)
	run, ok := commands[op]
	if !ok {
		fmt.Fprintf(stderr, "%s: unknown operation %q (see --list)\n", name, op)
		return ExitUsage
	}

	in, err := buildInput(fs.Args()[1:], opts.data, cfg.Workers)
	if err != nil {
		fmt.Fprintf(stderr, "%s: %v\n", name, err)
		return ExitUsage
	}

	client, err := newClient(cfg)
	if err != nil {
		fmt.Fprintf(stderr, "%s: %v\n", name, err)
		return ExitUsage
	}

	log := logger.Named("cli")
	log.Debug(ctx, "running operation", logger.String("operation", op), logger.Int("ids", len(in.ids)))

	out, err := run(ctx, app.New(client), in)
	if out != nil && (err == nil || len(in.ids) > 1) {
		if werr := writeJSON(stdout, out); werr != nil {
			fmt.Fprintf(stderr, "%s: %v\n", name, werr)
			return ExitFailed
		}
	}
	if err != nil {
		if errors.Is(err, ErrUsage) {
			fmt.Fprintf(stderr, "%s: %v\n", name, err)
			return ExitUsage
		}
		log.Error(ctx, "operation failed",
			logger.String("operation", op),
			logger.String("kind", string(transport.KindOf(err))),
			logger.Error(err),
		)
		fmt.Fprintf(stderr, "%s: %s: %v\n", name, op, err)
		return ExitFailed
	}
	return ExitOK
}

func newFlagSet(stderr io.Writer) (*pflag.FlagSet, *options) {
	opts := &options{}
	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.SortFlags = false

	fs.StringVarP(&opts.configPath, "config", "c", "", "YAML config file (default $"+config.EnvConfig+")")
	fs.StringVar(&opts.baseURL, "base-url", "", "backend scheme and host")
	fs.StringVar(&opts.profile, "profile", "", "backend profile: demo or default")
	fs.StringVar(&opts.token, "token", "", "bearer token")
	fs.DurationVar(&opts.timeout, "timeout", 0, "per-request timeout, 0 disables")
	fs.IntVarP(&opts.workers, "workers", "w", 0, "concurrent requests for multi-id operations")
	fs.StringVarP(&opts.data, "data", "d", "", "JSON params, inline or @file")
	fs.BoolVarP(&opts.verbose, "verbose", "v", false, "debug logging")
	fs.BoolVarP(&opts.list, "list", "l", false, "list operations matching the optional glob arguments and exit")

	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: %s [flags] <operation> [id...]\n\nFlags:\n%s\nRun with --list for the operations.\n", name, fs.FlagUsages())
	}
	return fs, opts
}

// loadConfig layers the flags that were set on top of the loaded config.
func loadConfig(ctx context.Context, fs *pflag.FlagSet, opts *options) (*config.Config, error) {
	path := opts.configPath
	if path == "" {
		path = os.Getenv(config.EnvConfig)
	}
	cfg, err := config.LoadFile(ctx, path)
	if err != nil {
		return nil, err
	}

	if fs.Changed("base-url") {
		cfg.BaseURL = opts.baseURL
	}
	if fs.Changed("profile") {
		cfg.Profile = opts.profile
	}
	if fs.Changed("token") {
		cfg.Token = opts.token
	}
	if fs.Changed("timeout") {
		cfg.TimeoutMS = int(opts.timeout.Milliseconds())
	}
	if fs.Changed("workers") {
		cfg.Workers = opts.workers
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func buildInput(args []string, data string, workers int) (input, error) {
	in := input{pool: batch.NewPool(workers, batch.WithLogger(logger.Get()))}

	for _, arg := range args {
		if !idPattern.MatchString(arg) {
			return input{}, errors.Wrapf(ErrUsage, "invalid id %q", arg)
		}
		id, err := cast.ToInt64E(arg)
		if err != nil {
			return input{}, errors.Wrapf(ErrUsage, "invalid id %q", arg)
		}
		in.ids = append(in.ids, id)
	}

	raw, err := readData(data)
	if err != nil {
		return input{}, err
	}
	in.data = raw
	return in, nil
}

// readData returns inline JSON, or the content of the file named after '@'.
func readData(data string) ([]byte, error) {
	data = strings.TrimSpace(data)
	if !strings.HasPrefix(data, "@") {
		return []byte(data), nil
	}
	raw, err := os.ReadFile(strings.TrimPrefix(data, "@"))
	if err != nil {
		return nil, errors.Wrap(err, "read --data file")
	}
	return raw, nil
}

func newClient(cfg *config.Config) (*transport.Client, error) {
	profile, err := transport.ProfileByName(cfg.Profile)
	if err != nil {
		return nil, err
	}
	return transport.New(
		transport.WithBaseURL(cfg.BaseURL),
		transport.WithProfile(profile),
		transport.WithTimeout(cfg.Timeout()),
		transport.WithToken(cfg.Token),
		transport.WithLogoutCodes(cfg.LogoutCodes...),
		transport.WithLogger(logger.Get()),
	), nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// printTable lists the bindings whose name matches any of patterns, or all
// of them when no pattern is given.
func printTable(w io.Writer, patterns []string) error {
	globs := make([]glob.Glob, 0, len(patterns))
	for _, p := range patterns {
		g, err := glob.Compile(p, '.')
		if err != nil {
			return errors.Wrapf(ErrUsage, "invalid pattern %q", p)
		}
		globs = append(globs, g)
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "OPERATION\tMETHOD\tPATH\tINPUT")
	for _, b := range binding.Table() {
		if len(globs) > 0 && !matchAny(globs, b.Name) {
			continue
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", b.Name, b.Method, b.Path, b.Mode)
	}
	return tw.Flush()
}

func matchAny(globs []glob.Glob, s string) bool {
	for _, g := range globs {
		if g.Match(s) {
			return true
		}
	}
	return false
}
