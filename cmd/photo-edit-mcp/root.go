package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/ironsheep/photo-edit-mcp/internal/config"
	"github.com/ironsheep/photo-edit-mcp/internal/editor"
	"github.com/ironsheep/photo-edit-mcp/internal/server"
)

const (
	envLogLevel = "PHOTO_EDIT_LOG_LEVEL"
	envConfig   = "PHOTO_EDIT_CONFIG"
)

type globalFlags struct {
	configPath string
	logLevel   string
}

// runtime is what every subcommand needs: settings, a logger and an editor.
type runtime struct {
	cfg    *config.Config
	log    *logrus.Logger
	editor *editor.Editor
}

func newRootCmd() *cobra.Command {
	flags := &globalFlags{}

	root := &cobra.Command{
		Use:   "photo-edit-mcp",
		Short: "Photo editor with undo, served over MCP",
		Long: `photo-edit-mcp edits one image at a time: resize, rotate, flip, grayscale,
blur, sharpen and brightness/contrast/color adjustments, with unlimited undo.

With no subcommand it serves MCP over stdin/stdout. Configure it in your MCP
client (e.g., Claude Desktop).

Environment variables:
  PHOTO_EDIT_LOG_LEVEL=debug    Log level (debug, info, warn, error)
  PHOTO_EDIT_CONFIG=path.yaml   Settings file`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := setup(flags, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			srv := server.New(rt.editor, server.Options{Config: rt.cfg, Logger: rt.log, Version: Version})
			if err := srv.Run(); err != nil {
				rt.log.WithError(err).Error("Server error")
				return err
			}
			return nil
		},
	}

	root.PersistentFlags().StringVar(&flags.configPath, "config", "", "settings file (default $"+envConfig+")")
	root.PersistentFlags().StringVar(&flags.logLevel, "log-level", "", "log level (default $"+envLogLevel+" or config)")

	root.AddCommand(
		newVersionCmd(),
		newHTTPCmd(flags),
		newApplyCmd(flags),
	)
	return root
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "photo-edit-mcp %s\n", Version)
			fmt.Fprintf(out, "  Build time: %s\n", BuildTime)
			fmt.Fprintf(out, "  Git commit: %s\n", GitCommit)
		},
	}
}

// setup loads settings and builds the logger and editor. Logs go to logOut,
// never stdout, which carries the MCP protocol.
func setup(flags *globalFlags, logOut io.Writer) (*runtime, error) {
	path := flags.configPath
	if path == "" {
		path = os.Getenv(envConfig)
	}
	cfg, err := config.LoadOptional(path)
	if err != nil {
		return nil, err
	}

	level := flags.logLevel
	if level == "" {
		level = os.Getenv(envLogLevel)
	}
	if level == "" {
		level = cfg.Log.Level
	}
	log, err := initLogger(level, logOut)
	if err != nil {
		return nil, err
	}

	fill, err := cfg.RotateFill()
	if err != nil {
		return nil, err
	}
	ed := editor.New(editor.Options{
		RotateFill: fill,
		Encode:     cfg.EncodeOptions(),
		MaxPixels:  cfg.Limits.MaxPixels,
		Logger:     log.WithField("component", "editor"),
	})

	log.WithFields(logrus.Fields{
		"version": Version,
		"built":   BuildTime,
		"commit":  GitCommit,
		"config":  path,
	}).Debug("Starting photo-edit-mcp")

	return &runtime{cfg: cfg, log: log, editor: ed}, nil
}

// initLogger builds a logger writing to out. Debug uses the text formatter
// for humans; other levels log JSON.
func initLogger(level string, out io.Writer) (*logrus.Logger, error) {
	lvl, err := logrus.ParseLevel(strings.TrimSpace(level))
	if err != nil {
		return nil, fmt.Errorf("invalid log level: %w", err)
	}

	logger := logrus.New()
	logger.SetOutput(out)
	logger.SetLevel(lvl)
	if lvl >= logrus.DebugLevel {
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	} else {
		logger.SetFormatter(&logrus.JSONFormatter{TimestampFormat: "2006-01-02 15:04:05"})
	}
	return logger, nil
}
