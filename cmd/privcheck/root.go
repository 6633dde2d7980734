package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/isseis/go-escalate/internal/bootstrap"
	"github.com/isseis/go-escalate/internal/config"
	"github.com/isseis/go-escalate/internal/logging"
	"github.com/isseis/go-escalate/internal/terminal"
	"github.com/isseis/go-escalate/privilege"
)

const (
	defaultLogLevel = "info"
	logLevelEnvVar  = "PRIVCHECK_LOG_LEVEL"
)

// Error definitions
var (
	ErrUnsupportedOutput = errors.New("unsupported output format")
	errRuntimeMissing    = errors.New("runtime not initialized")
)

// rootConfig carries the process facilities a command tree runs against.
type rootConfig struct {
	Out    io.Writer
	Err    io.Writer
	System privilege.System
	RunID  string
	Getenv func(string) string
}

type runtimeState struct {
	rootConfig

	configPath   string
	logLevel     string
	logDir       string
	outputFormat string
	wrapper      string
	quiet        bool
	noColor      bool
	color        bool

	profile *config.Profile
	logger  *slog.Logger
	closer  io.Closer
}

type runtimeKey struct{}

func newRootCommand(cfg rootConfig) *cobra.Command {
	if cfg.Getenv == nil {
		cfg.Getenv = os.Getenv
	}
	rt := &runtimeState{rootConfig: cfg}

	root := &cobra.Command{
		Use:           "privcheck",
		Short:         "Report and escalate process privileges",
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			return rt.setup()
		},
		PersistentPostRunE: func(_ *cobra.Command, _ []string) error {
			if rt.closer != nil {
				return rt.closer.Close()
			}
			return nil
		},
	}

	root.SetOut(cfg.Out)
	root.SetErr(cfg.Err)

	root.PersistentFlags().StringVar(&rt.configPath, "config", "", "Path to an escalation profile (TOML)")
	root.PersistentFlags().StringVar(&rt.logLevel, "log-level", "", "Log level: debug, info, warn, error (default from "+logLevelEnvVar+" or info)")
	root.PersistentFlags().StringVar(&rt.logDir, "log-dir", "", "Directory to place per-run JSON logs")
	root.PersistentFlags().StringVarP(&rt.outputFormat, "output", "o", formatText, "Output format: text, json, yaml")
	root.PersistentFlags().StringVar(&rt.wrapper, "wrapper", "", "Elevation wrapper (overrides the profile)")
	root.PersistentFlags().BoolVarP(&rt.quiet, "quiet", "q", false, "Plain console logs even on a terminal")
	root.PersistentFlags().BoolVar(&rt.noColor, "no-color", false, "Disable colored output")

	root.SetContext(context.WithValue(context.Background(), runtimeKey{}, rt))

	root.AddCommand(
		newStatusCommand(),
		newEscalateCommand(),
	)

	return root
}

func getRuntime(cmd *cobra.Command) (*runtimeState, error) {
	rt, ok := cmd.Context().Value(runtimeKey{}).(*runtimeState)
	if !ok || rt == nil {
		return nil, errRuntimeMissing
	}
	return rt, nil
}

// setup validates the global flags, installs the logger and loads the
// profile. Every failure here is a pre-execution error.
func (rt *runtimeState) setup() error {
	if !isSupportedFormat(rt.outputFormat) {
		return &logging.PreExecutionError{
			Type:      logging.ErrorTypeInvalidArguments,
			Message:   fmt.Sprintf("--output must be one of %s, %s, %s", formatText, formatJSON, formatYAML),
			Component: "cli",
			RunID:     rt.RunID,
			Err:       fmt.Errorf("%w: %q", ErrUnsupportedOutput, rt.outputFormat),
		}
	}

	levelName := rt.logLevel
	if levelName == "" {
		levelName = rt.Getenv(logLevelEnvVar)
	}
	if levelName == "" {
		levelName = defaultLogLevel
	}
	level, err := bootstrap.ParseLevel(levelName)
	if err != nil {
		return &logging.PreExecutionError{
			Type:      logging.ErrorTypeInvalidArguments,
			Message:   "invalid log level",
			Component: "cli",
			RunID:     rt.RunID,
			Err:       err,
		}
	}

	termOpts := terminal.Options{ForceNonInteractive: rt.quiet, DisableColor: rt.noColor}
	rt.color = terminal.NewDetector(termOpts).SupportsColor()

	logger, closer, err := bootstrap.SetupLogger(bootstrap.LoggerConfig{
		Level:         level,
		LogDir:        rt.logDir,
		RunID:         rt.RunID,
		ConsoleWriter: rt.Err,
		Terminal:      termOpts,
	})
	if err != nil {
		return &logging.PreExecutionError{
			Type:      logging.ErrorTypeLogFileOpen,
			Message:   "failed to set up logging",
			Component: "logging",
			RunID:     rt.RunID,
			Err:       err,
		}
	}
	rt.logger = logger.With("run_id", rt.RunID)
	rt.closer = closer

	if rt.configPath == "" {
		rt.profile = &config.Profile{}
		return nil
	}
	profile, err := config.Load(rt.configPath)
	if err != nil {
		return &logging.PreExecutionError{
			Type:      logging.ErrorTypeConfigParsing,
			Message:   "failed to load escalation profile",
			Component: "config",
			RunID:     rt.RunID,
			Err:       err,
		}
	}
	rt.profile = profile
	rt.logger.Debug("Profile loaded", "path", rt.configPath)
	return nil
}

// privilegeConfig merges the profile with the --wrapper override.
func (rt *runtimeState) privilegeConfig() privilege.Config {
	cfg := rt.profile.Config()
	if rt.wrapper != "" {
		cfg.Wrapper = rt.wrapper
	}
	return cfg
}

// reportError prints err, using the structured report for pre-execution
// errors.
func reportError(w io.Writer, runID string, err error) {
	var preErr *logging.PreExecutionError
	if errors.As(err, &preErr) {
		logging.HandlePreExecutionError(w, preErr)
		return
	}
	logging.HandlePreExecutionError(w, &logging.PreExecutionError{
		Type:      logging.ErrorTypeInvalidArguments,
		Message:   err.Error(),
		Component: "cli",
		RunID:     runID,
	})
}
