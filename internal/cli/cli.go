package cli

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/specialistvlad/spectrumgo/internal/app"
)

// EnvPrefix prefixes the environment variables that mirror the flags, so
// --log-level can also be given as SPECTRUMGO_LOG_LEVEL.
const EnvPrefix = "SPECTRUMGO"

// Command names.
const (
	CommandRun          = "run"
	CommandCapabilities = "capabilities"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// Invocation is a parsed command line: which command to run and the app
// configuration for it.
type Invocation struct {
	Command string
	Config  *app.Config
}

// Parse processes command-line arguments. It returns the selected
// invocation, a boolean indicating if the program should exit cleanly (help
// was printed), or an ExitError.
func Parse(args []string, output io.Writer) (*Invocation, bool, error) {
	slog.Debug("CLI parser started.")

	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	var inv *Invocation
	root := newRootCommand(v, func(name string, cfg *app.Config) { inv = &Invocation{Command: name, Config: cfg} })
	root.SetOut(output)
	root.SetErr(output)
	root.SetArgs(args)

	if err := root.Execute(); err != nil {
		var exitErr *ExitError
		if !errors.As(err, &exitErr) {
			exitErr = &ExitError{Code: 2, Message: err.Error()}
		}
		return nil, false, exitErr
	}
	if inv == nil {
		slog.Debug("No command selected, exiting after help output.")
		return nil, true, nil
	}

	slog.Debug("CLI parser finished successfully.", "command", inv.Command, "config", inv.Config)
	return inv, false, nil
}

func newRootCommand(v *viper.Viper, selected func(string, *app.Config)) *cobra.Command {
	root := &cobra.Command{
		Use:   "spectrumgo",
		Short: "Spectrum access layer: run, compute and print particle spectra",
		Long: `spectrumgo builds spectrum objects from HCL or YAML configuration, runs
their parameters to the requested renormalization scales, computes the
physical spectrum and prints it.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := root.PersistentFlags()
	pf.StringSliceP("config", "c", nil, "Configuration file or directory (.hcl, .yaml, .yml). Repeatable.")
	pf.String("log-level", "info", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")
	pf.String("log-format", "text", "Log output format. Options: 'text' or 'json'.")
	pf.Bool("trace", false, "Print OpenTelemetry spans to the output.")
	pf.String("transport", "", "Process group transport, overriding the config. Options: 'local' or 'socketio'.")
	pf.String("coordinator", "", "socket.io coordinator URL for the socketio transport.")
	pf.String("job", "", "Job name shared by all members of a socketio process group.")
	_ = v.BindPFlags(pf)

	for _, c := range []struct{ name, short string }{
		{CommandRun, "Build, run and print every configured spectrum"},
		{CommandCapabilities, "Print the validated capability table and its dependency order"},
	} {
		root.AddCommand(&cobra.Command{
			Use:   c.name + " [CONFIG_PATH...]",
			Short: c.short,
			Args:  cobra.ArbitraryArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				cfg, err := configFrom(v, args)
				if err != nil {
					return err
				}
				selected(c.name, cfg)
				return nil
			},
		})
	}
	return root
}

// configFrom validates flag and environment values into an app.Config.
// Positional arguments are additional configuration paths.
func configFrom(v *viper.Viper, args []string) (*app.Config, error) {
	paths := append(v.GetStringSlice("config"), args...)
	if len(paths) == 0 {
		return nil, &ExitError{Code: 2, Message: "no configuration given: pass -c <file> or a CONFIG_PATH argument"}
	}

	cfg, err := app.NewConfig(app.Config{
		ConfigPaths:    paths,
		LogLevel:       strings.ToLower(v.GetString("log-level")),
		LogFormat:      strings.ToLower(v.GetString("log-format")),
		Trace:          v.GetBool("trace"),
		Transport:      v.GetString("transport"),
		CoordinatorURL: v.GetString("coordinator"),
		Job:            v.GetString("job"),
	})
	if err != nil {
		return nil, &ExitError{Code: 2, Message: fmt.Sprintf("invalid arguments: %v", err)}
	}
	return cfg, nil
}
