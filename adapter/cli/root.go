package cli

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/DHariharanD/Smart-Task-Analyser/pkg/config"
	"github.com/DHariharanD/Smart-Task-Analyser/pkg/observability"
)

var (
	cfgFile string
	verbose bool
	logger  *slog.Logger

	cfgOnce sync.Once
	cfg     *config.Config
	cfgErr  error
)

type commandContext struct {
	correlationID uuid.UUID
	startedAt     time.Time
}

type commandContextKey struct{}

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "taskanalyzer",
	Short: "Smart Task Analyzer - rank tasks by urgency, importance, effort and dependencies",
	Long: `taskanalyzer scores a list of tasks, ranks them under a chosen strategy
and explains the top suggestions. It also flags circular dependencies.

Tasks can come from a JSON or YAML file or from the local task store.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := LoadConfig()
		if err != nil {
			return err
		}
		if logger == nil {
			level := c.LogLevel
			if verbose {
				level = string(observability.LogLevelDebug)
			}
			logger = observability.LoggerFor(c.AppEnv, level, c.LogFormat, Version)
		}

		info := commandContext{
			correlationID: uuid.New(),
			startedAt:     time.Now(),
		}
		ctx := observability.WithCorrelationID(cmd.Context(), info.correlationID.String())
		cmd.SetContext(context.WithValue(ctx, commandContextKey{}, info))
		logger.DebugContext(ctx, "command start", "command", cmd.CommandPath())
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		info, ok := cmd.Context().Value(commandContextKey{}).(commandContext)
		if !ok {
			return
		}
		observability.LogDuration(cmd.Context(), Logger(), cmd.CommandPath(), info.startedAt)
	},
}

// Execute runs the root command and releases the application afterwards.
func Execute(ctx context.Context) error {
	defer Shutdown()
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

// AddCommand adds a command to the root command.
func AddCommand(cmd *cobra.Command) {
	rootCmd.AddCommand(cmd)
}

// Root returns the root command. Tests use it to run command lines.
func Root() *cobra.Command {
	return rootCmd
}

// SetLogger sets the CLI logger.
func SetLogger(l *slog.Logger) {
	logger = l
}

// Logger returns the CLI logger.
func Logger() *slog.Logger {
	if logger == nil {
		return slog.Default()
	}
	return logger
}

// LoadConfig loads configuration once, from --config when given.
func LoadConfig() (*config.Config, error) {
	cfgOnce.Do(func() {
		cfg, cfgErr = config.Load(cfgFile)
		if cfgErr == nil {
			cfgErr = cfg.Validate()
		}
	})
	return cfg, cfgErr
}

// SetConfig replaces the loaded configuration.
func SetConfig(c *config.Config) {
	cfgOnce.Do(func() {})
	cfg, cfgErr = c, nil
}

// Verbose reports whether --verbose was given.
func Verbose() bool {
	return verbose
}

func errNotInitialized(what string) error {
	return fmt.Errorf("%s requires the task store - application not initialized", what)
}
