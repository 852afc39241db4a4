// realmquest is a grid adventure played in the terminal: explore the realm,
// avoid traps and collect every treasure as a warrior, mage or rogue.
//
// Usage:
//
//	realmquest play            - Play (menus, or straight in with --class)
//	realmquest classes         - List the playable classes
//	realmquest world           - Show the quest map
//	realmquest scores          - Show the hall of fame
//	realmquest replay <file>   - Replay a recorded session
//	realmquest serve           - Start SSH server for remote play
//
// Global flags:
//
//	--fps <rate>          - Set tick rate (default: 60)
//	--seed <value>        - Set seed for run ids (0 = time based)
//	--db <path>           - Set database path (default: ~/.realmquest/runs.db)
//	--config <path>       - Quest configuration YAML
//	--log-level <level>   - debug, info, warn, error
//	--log-file <path>     - Write logs to a file (full screen commands log nowhere otherwise)
//	--telemetry           - Export run traces over OTLP/HTTP
//	--theme <name>        - Menu theme: default, mono
package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/realmquest/internal/adventure"
	"github.com/vovakirdan/realmquest/internal/config"
	"github.com/vovakirdan/realmquest/internal/platform/tui"
	"github.com/vovakirdan/realmquest/internal/telemetry"
)

// version is set at build time.
var version = "dev"

var (
	// Global flags
	flagFPS       int
	flagSeed      int64
	flagDBPath    string
	flagConfig    string
	flagLogLevel  string
	flagLogFile   string
	flagTelemetry bool
	flagTheme     string
)

var (
	logger  *log.Logger
	logFile *os.File
	quest   config.QuestConfig

	shutdownTelemetry func(context.Context) error
)

func main() {
	err := rootCmd.Execute()
	teardown()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "realmquest",
	Short: "Realm Quest - a grid adventure in your terminal",
	Long: `Realm Quest is a small grid adventure. Pick a warrior, mage or rogue,
explore the realm, avoid the traps and collect every treasure.

Available commands:
  play     - Play locally
  classes  - List the playable classes
  world    - Show the quest map
  scores   - View the hall of fame
  replay   - Replay a recorded session
  serve    - Start SSH server for remote play

Examples:
  realmquest play
  realmquest play --name Lydia --race nord --class warrior
  realmquest play --class rogue --record run.jsonl.zst
  realmquest replay run.jsonl.zst
  realmquest serve --ssh :2222`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "Seed recorded with the session (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.realmquest/runs.db", "Path to runs database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to quest config YAML")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file")
	rootCmd.PersistentFlags().BoolVar(&flagTelemetry, "telemetry", false, "Export traces over OTLP/HTTP (OTEL_EXPORTER_OTLP_* env vars)")
	rootCmd.PersistentFlags().StringVar(&flagTheme, "theme", "default", "Menu theme: default, mono")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(classesCmd)
	rootCmd.AddCommand(worldCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(replayCmd)
	rootCmd.AddCommand(serveCmd)
}

// envDefaults lets REALMQUEST_* variables stand in for flags that were not set.
var envDefaults = map[string]string{
	"db":        "REALMQUEST_DB",
	"config":    "REALMQUEST_CONFIG",
	"log-level": "REALMQUEST_LOG_LEVEL",
	"theme":     "REALMQUEST_THEME",
}

// setup loads the environment, logging, quest configuration and telemetry
// before any command runs.
func setup(cmd *cobra.Command, _ []string) error {
	// Not fatal: the environment may be set directly.
	_ = godotenv.Load()

	flags := cmd.Flags()
	for name, env := range envDefaults {
		if v := os.Getenv(env); v != "" && !flags.Changed(name) {
			if err := flags.Set(name, v); err != nil {
				return fmt.Errorf("%s: %w", env, err)
			}
		}
	}
	if os.Getenv("REALMQUEST_TELEMETRY") != "" && !flags.Changed("telemetry") {
		flagTelemetry = true
	}

	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return fmt.Errorf("invalid log level %q", flagLogLevel)
	}
	var out io.Writer = os.Stderr
	if flagLogFile != "" {
		logFile, err = os.OpenFile(flagLogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
		if err != nil {
			return fmt.Errorf("cannot open log file: %w", err)
		}
		out = logFile
	}
	logger = log.NewWithOptions(out, log.Options{
		ReportTimestamp: true,
		Prefix:          "realmquest",
		Level:           level,
	})

	quest, err = config.Load(flagConfig)
	if err != nil {
		return err
	}
	adventure.SetQuestConfig(quest)

	theme, err := tui.ThemeByName(flagTheme)
	if err != nil {
		return err
	}
	tui.SetTheme(theme)

	opts := []adventure.Option{adventure.WithLogger(logger)}
	if flagTelemetry {
		shutdown, err := telemetry.Setup(context.Background(), version)
		if err != nil {
			logger.Warn("telemetry setup failed, continuing without traces", "error", err)
		} else {
			shutdownTelemetry = shutdown
			opts = append(opts, adventure.WithTracer(telemetry.Tracer("adventure")))
		}
	}
	adventure.SetSessionOptions(opts...)

	return nil
}

// quietLogs silences logging while a full screen program owns the terminal,
// unless logs go to a file.
func quietLogs() {
	if logFile == nil {
		logger.SetOutput(io.Discard)
	}
}

func teardown() {
	if shutdownTelemetry != nil {
		if err := shutdownTelemetry(context.Background()); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: telemetry shutdown: %v\n", err)
		}
	}
	if logFile != nil {
		logFile.Close()
	}
}
