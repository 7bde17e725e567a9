package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/username/tariff-blocks/internal/calendar"
	"github.com/username/tariff-blocks/internal/config"
	"github.com/username/tariff-blocks/internal/daemon"
	"github.com/username/tariff-blocks/internal/render"
	"github.com/username/tariff-blocks/internal/timeblock"
	"github.com/username/tariff-blocks/pkg/dateutil"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

var (
	configPath string
	logger     *zap.Logger
	cfg        *config.Config
	out        io.Writer = os.Stdout
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "tariff-blocks",
		Short:         "Semafor omrežnine",
		Long:          "Show the Slovenian network tariff time block for a date and hour",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			cfg, err = config.Load(configPath)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			cfg.ExpandEnvVars()

			if cfg.Log.File != "" {
				logger = initFileLogger(cfg.Log.File, cfg.Log.Level)
			} else {
				initLogger(cfg.Log.Level)
			}

			if err := timeblock.ValidateTables(); err != nil {
				return fmt.Errorf("time block tables are inconsistent: %w", err)
			}
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if logger != nil {
				_ = logger.Sync()
			}
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "config.yaml", "Config file path")

	rootCmd.AddCommand(currentCmd())
	rootCmd.AddCommand(hourCmd())
	rootCmd.AddCommand(blocksCmd())
	rootCmd.AddCommand(metaCmd())
	rootCmd.AddCommand(watchCmd())

	return rootCmd
}

func currentCmd() *cobra.Command {
	var atStr string
	var format string

	cmd := &cobra.Command{
		Use:   "current",
		Short: "Show the time block active now or at --at",
		RunE: func(cmd *cobra.Command, args []string) error {
			date, err := resolveMoment(atStr)
			if err != nil {
				return err
			}

			resolver, err := initializeResolver()
			if err != nil {
				return err
			}

			block := resolver.CurrentTimeBlock(date)
			logger.Debug("Resolved current block",
				zap.Time("date", date),
				zap.Any("block", block))

			format = outputFormat(format)
			if format != render.FormatText {
				return render.Encode(out, format, block)
			}

			fmt.Fprintln(out, render.NewRenderer(cfg.Output.Color).Current(date, block))
			return nil
		},
	}

	cmd.Flags().StringVar(&atStr, "at", "", "Moment to classify (YYYY-MM-DD, YYYY-MM-DDTHH:MM or RFC3339); default now")
	cmd.Flags().StringVarP(&format, "format", "f", "", "Output format: text, json or yaml")

	return cmd
}

func hourCmd() *cobra.Command {
	var dateStr string
	var hour int

	cmd := &cobra.Command{
		Use:   "hour",
		Short: "Print the block id for --hour on --date",
		RunE: func(cmd *cobra.Command, args []string) error {
			date, err := resolveDate(dateStr)
			if err != nil {
				return err
			}

			resolver, err := initializeResolver()
			if err != nil {
				return err
			}

			fmt.Fprintln(out, resolver.BlockForHour(date, hour))
			return nil
		},
	}

	cmd.Flags().StringVar(&dateStr, "date", "", "Date (YYYY-MM-DD); default today")
	cmd.Flags().IntVar(&hour, "hour", 0, "Hour of day (0-23)")
	_ = cmd.MarkFlagRequired("hour")

	return cmd
}

func blocksCmd() *cobra.Command {
	var dateStr string
	var format string

	cmd := &cobra.Command{
		Use:   "blocks",
		Short: "Show the time block timeline of a day",
		RunE: func(cmd *cobra.Command, args []string) error {
			date, err := resolveDate(dateStr)
			if err != nil {
				return err
			}

			resolver, err := initializeResolver()
			if err != nil {
				return err
			}

			day := resolver.Day(date)

			format = outputFormat(format)
			if format != render.FormatText {
				return render.Encode(out, format, day.Segments)
			}

			currentHour := -1
			if now := time.Now().In(cfg.Calendar.GetLocation()); dateutil.IsSameDay(date, now) {
				currentHour = now.Hour()
			}

			fmt.Fprintln(out, render.NewRenderer(cfg.Output.Color).Timeline(day, currentHour))
			return nil
		},
	}

	cmd.Flags().StringVar(&dateStr, "date", "", "Date (YYYY-MM-DD); default today")
	cmd.Flags().StringVarP(&format, "format", "f", "", "Output format: text, json or yaml")

	return cmd
}

func metaCmd() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "meta",
		Short: "Print the page metadata of the block visualization",
		RunE: func(cmd *cobra.Command, args []string) error {
			meta := render.DefaultPageMeta()

			format = outputFormat(format)
			if format != render.FormatText {
				return render.Encode(out, format, meta)
			}

			fmt.Fprintf(out, "Title:       %s\n", meta.Title)
			fmt.Fprintf(out, "Description: %s\n", meta.Description)
			fmt.Fprintf(out, "Keywords:    %s\n", meta.Keywords)
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "", "Output format: text, json or yaml")

	return cmd
}

func watchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Log every time block change until interrupted",
		RunE: func(cmd *cobra.Command, args []string) error {
			resolver, err := initializeResolver()
			if err != nil {
				return err
			}

			d := daemon.NewDaemon(
				resolver,
				cfg.Calendar.GetLocation(),
				cfg.Watch.GetCheckInterval(),
				cfg.Watch.SystemTray,
				logger,
			)
			renderer := render.NewRenderer(cfg.Output.Color)
			d.OnChange(func(tr daemon.Transition) {
				fmt.Fprintln(out, renderer.Current(tr.At, tr.To))
			})

			return d.Start()
		},
	}
}

// resolveMoment parses value in the configured zone, or returns now
func resolveMoment(value string) (time.Time, error) {
	loc := cfg.Calendar.GetLocation()
	if value == "" {
		return time.Now().In(loc), nil
	}

	date, err := dateutil.ParseDate(value, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date: %w", err)
	}
	return date, nil
}

// resolveDate is resolveMoment truncated to the start of the day
func resolveDate(value string) (time.Time, error) {
	if value == "" {
		return dateutil.Today(cfg.Calendar.GetLocation()), nil
	}

	date, err := resolveMoment(value)
	if err != nil {
		return time.Time{}, err
	}
	return dateutil.StartOfDay(date), nil
}

func outputFormat(flagValue string) string {
	if flagValue != "" {
		return flagValue
	}
	if cfg.Output.Format != "" {
		return cfg.Output.Format
	}
	return render.FormatText
}

func initializeResolver() (*timeblock.Resolver, error) {
	sources := []calendar.Calendar{calendar.NewSloveniaCalendar()}
	if cfg.Calendar.ExtraHolidaysFile != "" {
		sources = append(sources, calendar.NewFileCalendar(cfg.Calendar.ExtraHolidaysFile, logger))
	}

	cal := calendar.NewCompositeCalendar(logger, sources...)
	if cfg.Calendar.ExtraHolidaysFile != "" {
		if err := cal.LoadExtras(); err != nil {
			return nil, err
		}
	}

	return timeblock.NewResolver(cal, logger), nil
}

func initLogger(level string) {
	config := zap.NewProductionConfig()
	config.EncoderConfig.TimeKey = "timestamp"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	var zapLevel zapcore.Level
	if err := zapLevel.UnmarshalText([]byte(level)); err != nil {
		zapLevel = zapcore.InfoLevel
	}
	config.Level = zap.NewAtomicLevelAt(zapLevel)

	var err error
	logger, err = config.Build()
	if err != nil {
		panic(fmt.Sprintf("failed to initialize logger: %v", err))
	}
}

func initFileLogger(logFile string, level string) *zap.Logger {
	// Setup lumberjack for log rotation
	logWriter := &lumberjack.Logger{
		Filename:   logFile,
		MaxSize:    10, // MB
		MaxBackups: 3,
		MaxAge:     28, // days
		Compress:   true,
	}

	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.TimeKey = "timestamp"
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	var zapLevel zapcore.Level
	if err := zapLevel.UnmarshalText([]byte(level)); err != nil {
		zapLevel = zapcore.InfoLevel
	}

	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(encoderConfig),
		zapcore.AddSync(logWriter),
		zapLevel,
	)

	return zap.New(core)
}
