package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"sort"
	"syscall"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/nao1215/complyreport/internal/config"
	"github.com/nao1215/complyreport/internal/database"
	"github.com/nao1215/complyreport/internal/log"
	"github.com/nao1215/complyreport/internal/model"
	"github.com/nao1215/complyreport/internal/report"
)

// errStdinConflict is returned when both the configuration document and the
// run result are to be read from standard input.
var errStdinConflict = errors.New("the JSON config and the run result cannot both be read from standard input")

// optionFlags maps report flags to the option keys they set. Only flags the
// user changed become invocation options, so an unset flag never overrides
// the configuration document.
var optionFlags = map[string]string{
	"reporter":      "reporter",
	"format":        "format",
	"output":        "output",
	"json-config":   "json_config",
	"color":         "color",
	"target":        "target",
	"password":      "password",
	"sudo-password": "sudo_password",
	"log-level":     "log_level",
	"log-format":    "log_format",
	"log-location":  "log_location",
	"diagnose":      "diagnose",
}

// NewReportCmd creates the report command.
func NewReportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report [run.json|-]",
		Short: "Render the reports of a completed run",
		Long: `Report reads the JSON result tree of a completed compliance run and renders
it with every configured reporter.

The configuration is resolved before the run is read: built-in defaults,
then the JSON config document, then the flags given on the command line.
Each reporter writes either to standard output or to a file, and at most
one reporter may own standard output. Without an argument, or with "-",
the run result is read from standard input.

Reporters:
  cli, json, json-min, documentation, junit
  automate, html, json-rspec and progress are accepted but not rendered.

Examples:
  # Console report on standard output
  complyreport report run.json

  # Console report plus JSON and JUnit files
  complyreport report -r cli -r json:out/run.json -r junit:out/junit.xml run.json

  # Minimal JSON on standard output, logs move to stderr
  complyreport report -r json-min run.json

  # Legacy format/output options
  complyreport report --format json --output out/run.json run.json

  # Read the run from a pipe and the config from a file
  cat run.json | complyreport report -c complyreport.json -`,
		Args: cobra.MaximumNArgs(1),
		RunE: runReportCmd,
	}

	// Reporter flags
	cmd.Flags().StringArrayP("reporter", "r", nil,
		"Reporter as name or name:target; target is a file path or - for stdout (repeatable)")
	cmd.Flags().String("format", "",
		"Deprecated: single reporter name, use --reporter instead")
	cmd.Flags().StringP("output", "o", "",
		"Deprecated: output file for --format, use --reporter name:path instead")
	cmd.Flags().Bool("color", true,
		"Use colours in the console report")
	cmd.Flags().StringP("target", "t", "",
		"Description of the scanned system shown in the console report")

	// Configuration
	cmd.Flags().StringP("json-config", "c", "",
		"JSON or YAML configuration file, or - for stdin (default: complyreport.json in the XDG config dir)")

	// Target credentials. They are only recorded and masked in logs, but a
	// bare flag without value is an error.
	cmd.Flags().String("password", "",
		"Password of the target (use --password=VALUE)")
	cmd.Flags().String("sudo-password", "",
		"Sudo password of the target (use --sudo-password=VALUE)")
	cmd.Flags().Lookup("password").NoOptDefVal = config.MissingValue
	cmd.Flags().Lookup("sudo-password").NoOptDefVal = config.MissingValue

	// Logging flags
	cmd.Flags().String("log-level", config.DefaultLogLevel,
		"Log level: debug, info, warn, error or fatal")
	cmd.Flags().String("log-format", "text",
		"Log format: text or json")
	cmd.Flags().String("log-location", "",
		"Append logs to this file instead of a standard stream")

	cmd.Flags().Bool("diagnose", false,
		"Print the option sources and the merged options before reporting")
	cmd.Flags().Bool("no-history", false,
		"Do not archive the run in the history database")

	return cmd
}

// runReportCmd executes the report command.
func runReportCmd(cmd *cobra.Command, args []string) error {
	source := config.StdinSource
	if len(args) == 1 {
		source = args[0]
	}

	invocation, err := invocationOptions(cmd.Flags())
	if err != nil {
		return err
	}

	// Deprecation notices are emitted before the configured logger exists.
	bootstrap := log.NewSecureLogger(cmd.ErrOrStderr(), slog.LevelInfo)

	fs := afero.NewOsFs()
	loader := config.NewLoader(
		config.WithFs(fs),
		config.WithStdin(cmd.InOrStdin()),
		config.WithLoaderLogger(bootstrap),
	)

	jsonConfig, err := cmd.Flags().GetString("json-config")
	if err != nil {
		return err
	}
	if jsonConfig == config.StdinSource && source == config.StdinSource {
		return errStdinConflict
	}
	document, err := loader.Load(loader.Find(jsonConfig))
	if err != nil {
		return err
	}

	cfg, err := config.Resolve(config.ModeExec, document, invocation, config.WithLogger(bootstrap))
	if err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	logger, closeLog, err := log.New(log.Options{
		Level:          cfg.LogLevel,
		Format:         cfg.LogFormat,
		Location:       cfg.LogLocation,
		SuppressStdout: cfg.SuppressLogOutput(),
		Stdout:         cmd.OutOrStdout(),
		Stderr:         cmd.ErrOrStderr(),
	})
	if err != nil {
		return err
	}
	defer func() { _ = closeLog() }()

	if cfg.Diagnose {
		printDiagnose(cmd.ErrOrStderr(), invocation, document, cfg.Options)
	}

	run, err := readRun(fs, cmd.InOrStdin(), source)
	if err != nil {
		return err
	}

	// Set up context with signal handling for graceful shutdown
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	noHistory, err := cmd.Flags().GetBool("no-history")
	if err != nil {
		return err
	}

	return runReport(ctx, cfg, run, reportEnv{
		fs:        fs,
		stdout:    cmd.OutOrStdout(),
		logger:    logger,
		dataDir:   getDataDir(cmd),
		noHistory: noHistory,
	})
}

// reportEnv carries the process resources a report run writes to.
type reportEnv struct {
	fs        afero.Fs
	stdout    io.Writer
	logger    *slog.Logger
	dataDir   string
	noHistory bool
}

// runReport renders run with every configured reporter and archives it.
func runReport(ctx context.Context, cfg *config.Config, run *model.RunResult, env reportEnv) error {
	env.logger.Debug("rendering reports",
		"reporters", cfg.ReporterNames(),
		"profiles", len(run.Profiles),
	)

	dispatcher := report.NewDispatcher(
		report.WithFs(env.fs),
		report.WithStdout(env.stdout),
		report.WithLogger(env.logger),
		report.WithRendererOptions(
			report.WithColor(cfg.Color),
			report.WithTarget(cfg.Target),
		),
	)

	outputs, err := dispatcher.Dispatch(ctx, cfg.Reporters, run)
	if err != nil {
		return fmt.Errorf("failed to write reports: %w", err)
	}
	env.logger.Debug("reports dispatched", "count", len(outputs))

	if env.noHistory {
		return nil
	}
	if err := archiveRun(ctx, env.dataDir, run, cfg.Target, env.logger); err != nil {
		env.logger.Warn("failed to archive run", "error", err)
	}
	return nil
}

// archiveRun stores run in the history database under dataDir.
func archiveRun(ctx context.Context, dataDir string, run *model.RunResult, target string, logger *slog.Logger) error {
	db, err := database.Open(dataDir, database.DefaultOptions())
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	id, err := db.SaveRun(ctx, run, target)
	if err != nil {
		return err
	}
	logger.Debug("run archived", "id", id, "database", db.Path())
	return nil
}

// readRun decodes the run result from source, a file path or "-" for stdin.
func readRun(fs afero.Fs, stdin io.Reader, source string) (*model.RunResult, error) {
	if source == config.StdinSource {
		run, err := model.DecodeRunResult(stdin)
		if err != nil {
			return nil, fmt.Errorf("failed to read run result from standard input: %w", err)
		}
		return run, nil
	}

	f, err := fs.Open(source)
	if err != nil {
		return nil, fmt.Errorf("failed to open run result: %w", err)
	}
	defer f.Close()

	run, err := model.DecodeRunResult(f)
	if err != nil {
		return nil, fmt.Errorf("failed to read run result %s: %w", source, err)
	}
	return run, nil
}

// invocationOptions collects the options set by changed flags.
func invocationOptions(flags *pflag.FlagSet) (config.Options, error) {
	opts := config.Options{}
	var err error
	flags.Visit(func(f *pflag.Flag) {
		key, ok := optionFlags[f.Name]
		if !ok || err != nil {
			return
		}
		switch f.Value.Type() {
		case "stringArray":
			var v []string
			v, err = flags.GetStringArray(f.Name)
			opts[key] = v
		case "bool":
			var v bool
			v, err = flags.GetBool(f.Name)
			opts[key] = v
		default:
			opts[key] = f.Value.String()
		}
	})
	if err != nil {
		return nil, err
	}
	return opts, nil
}

// printDiagnose writes every option source and the merged result to w.
// Credentials are masked by the secure handler.
func printDiagnose(w io.Writer, invocation, document, merged config.Options) {
	logger := log.NewSecureLogger(w, slog.LevelDebug)
	for _, src := range []struct {
		name string
		opts config.Options
	}{
		{"invocation", invocation},
		{"json config", document},
		{"merged", merged},
	} {
		logger.Info("options", "source", src.name, slog.Group("options", optionAttrs(src.opts)...))
	}
}

func optionAttrs(opts config.Options) []any {
	keys := make([]string, 0, len(opts))
	for k := range opts {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	attrs := make([]any, 0, len(keys))
	for _, k := range keys {
		attrs = append(attrs, slog.Any(k, opts[k]))
	}
	return attrs
}
