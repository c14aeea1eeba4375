package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/username/invoicegen/internal/calendar"
	"github.com/username/invoicegen/internal/config"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// sourceFactory builds the holiday source used by calendar commands
type sourceFactory func(cfg *config.Config, logger *zap.Logger) (calendar.HolidaySource, error)

// app carries state shared by all commands of one invocation
type app struct {
	configPath string
	division   string
	cfg        *config.Config
	logger     *zap.Logger
	newSource  sourceFactory
	source     calendar.HolidaySource
}

func main() {
	if err := newRootCmd(buildSource).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd(newSource sourceFactory) *cobra.Command {
	a := &app{
		logger:    zap.NewNop(),
		newSource: newSource,
	}

	rootCmd := &cobra.Command{
		Use:           "invoicegen",
		Short:         "Invoice and timesheet generator",
		Long:          "Professional invoice and timesheet generator with UK bank holiday calendar utilities",
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(a.configPath)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("division") {
				if _, err := calendar.ParseDivision(a.division); err != nil {
					return err
				}
				cfg.Calendar.Division = a.division
			}
			a.cfg = cfg

			if cfg.Log.File != "" {
				a.logger = initFileLogger(cfg.Log.File, cfg.Log.Level)
			} else {
				a.logger = initLogger(cfg.Log.Level)
			}
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if closer, ok := a.source.(io.Closer); ok {
				_ = closer.Close()
			}
			_ = a.logger.Sync()
		},
	}

	rootCmd.PersistentFlags().StringVarP(&a.configPath, "config", "c", "", "Config file path (default: ./invoicegen.yaml if present)")
	rootCmd.PersistentFlags().StringVarP(&a.division, "division", "d", "", "UK division: england-and-wales (england, wales), scotland, northern-ireland")

	rootCmd.AddCommand(calendarCmd(a))

	return rootCmd
}

// holidaySource builds the source once per invocation
func (a *app) holidaySource() (calendar.HolidaySource, error) {
	if a.source != nil {
		return a.source, nil
	}
	src, err := a.newSource(a.cfg, a.logger)
	if err != nil {
		return nil, err
	}
	a.source = src
	return src, nil
}

// newCalendar creates a calendar for division, or the configured one when empty
func (a *app) newCalendar(division string) (*calendar.WorkingDayCalendar, error) {
	src, err := a.holidaySource()
	if err != nil {
		return nil, err
	}
	if division == "" {
		division = a.cfg.Calendar.Division
	}
	return calendar.NewWorkingDayCalendar(division, src, a.logger)
}

// buildSource wires GOV.UK, the optional local mirror and the shared cache
func buildSource(cfg *config.Config, logger *zap.Logger) (calendar.HolidaySource, error) {
	var src calendar.HolidaySource = calendar.NewGovUKSource(cfg.Calendar.SourceURL, logger)

	if cfg.Calendar.FallbackFile != "" {
		logger.Debug("Using local holiday mirror as fallback",
			zap.String("file", cfg.Calendar.FallbackFile))
		src = calendar.NewCompositeSource(src, calendar.NewFileSource(cfg.Calendar.FallbackFile, logger), logger)
	}

	cached, err := calendar.NewCachedSource(src, cfg.Calendar.SourceURL, cfg.Calendar.GetCacheTTL(), logger)
	if err != nil {
		return nil, err
	}
	return cached, nil
}

func parseLevel(level string) zapcore.Level {
	var zapLevel zapcore.Level
	if err := zapLevel.UnmarshalText([]byte(level)); err != nil {
		zapLevel = zapcore.WarnLevel
	}
	return zapLevel
}

func initLogger(level string) *zap.Logger {
	config := zap.NewProductionConfig()
	config.Level = zap.NewAtomicLevelAt(parseLevel(level))
	config.EncoderConfig.TimeKey = "timestamp"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	logger, err := config.Build()
	if err != nil {
		panic(fmt.Sprintf("failed to initialize logger: %v", err))
	}
	return logger
}

func initFileLogger(logFile string, level string) *zap.Logger {
	// Setup lumberjack for log rotation
	logWriter := &lumberjack.Logger{
		Filename:   logFile,
		MaxSize:    10,   // MB
		MaxBackups: 3,    // Keep max 3 old log files
		MaxAge:     28,   // days
		Compress:   true, // Compress old logs with gzip
	}

	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.TimeKey = "timestamp"
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(encoderConfig),
		zapcore.AddSync(logWriter),
		parseLevel(level),
	)

	return zap.New(core)
}
