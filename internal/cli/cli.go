// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"errors"
	"io/fs"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jeranaias/devconsole/internal/config"
	"github.com/jeranaias/devconsole/internal/console"
	"github.com/jeranaias/devconsole/internal/demo"
	"github.com/jeranaias/devconsole/internal/logging"
	"github.com/jeranaias/devconsole/internal/session"
)

// Build information, set with -ldflags.
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// =============================================================================
// GLOBAL OPTIONS
// =============================================================================

// options are the persistent flags shared by every command.
type options struct {
	configPath string
	valuesFile string
	logLevel   string
	theme      string
	noBanner   bool
	watch      bool
}

// app holds what a command needs once flags are parsed.
type app struct {
	opts    options
	cfg     *config.Config
	cfgPath string
	log     *zap.Logger
}

// load reads the configuration and builds the logger. Flags override the
// file and the environment.
func (a *app) load() error {
	path := a.opts.configPath
	if path == "" {
		p, err := config.ConfigPath()
		if err != nil {
			return &ConfigError{Err: err}
		}
		path = p
	}
	a.cfgPath = path

	cfg, err := loadConfig(path)
	if err != nil {
		return &ConfigError{Path: path, Err: err}
	}
	if a.opts.valuesFile != "" {
		cfg.Values.File = a.opts.valuesFile
	}
	if a.opts.logLevel != "" {
		cfg.Log.Level = a.opts.logLevel
	}
	if a.opts.theme != "" {
		cfg.Console.Theme = a.opts.theme
	}
	if a.opts.noBanner {
		cfg.Console.Banner = false
	}
	if a.opts.watch {
		cfg.Values.Watch = true
	}
	if err := cfg.Validate(); err != nil {
		return &ConfigError{Path: path, Err: err}
	}
	a.cfg = cfg

	logger, err := logging.New(cfg.Log.Level, cfg.Log.File)
	if err != nil {
		return &ConfigError{Path: path, Err: err}
	}
	a.log = logger
	return nil
}

// loadConfig reads path, falling back to the defaults when it is missing.
func loadConfig(path string) (*config.Config, error) {
	if _, err := os.Stat(path); err == nil {
		return config.LoadFromPath(path)
	} else if !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}
	cfg := config.Default()
	cfg.ApplyEnvOverrides()
	return cfg, nil
}

// start opens a console session over the demo game with the console
// settings exposed, then applies the values file if one is configured.
// The result of loading it is returned so batch commands can fail on it.
func (a *app) start(banner bool) (*session.Session, console.Result) {
	sess := session.New(demo.New(), session.Config{
		Prompt:   a.cfg.Console.Prompt,
		MaxSpans: a.cfg.Console.MaxLines,
		Banner:   banner && a.cfg.Console.Banner,
		Logger:   a.log,
	})
	sess.Extend(a.cfg)
	if a.cfg.Values.File == "" {
		return sess, console.Ok("")
	}
	return sess, sess.LoadFile(a.cfg.Values.File)
}

func (a *app) close() {
	if a.log != nil {
		_ = a.log.Sync()
	}
}

// =============================================================================
// ROOT COMMAND
// =============================================================================

// annotationNoConfig marks commands that run without loading the config.
const annotationNoConfig = "devconsole/no-config"

// NewRootCmd builds the devconsole command tree.
func NewRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "devconsole",
		Short: "Interactive developer console for tweaking a running program",
		Long: `devconsole exposes a program's settings and actions as a tree of console
commands. Type a property name to read it, add a value to set it, or call an
action with arguments.

With no subcommand it opens the console window on a terminal, and reads
commands line by line otherwise.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if _, skip := cmd.Annotations[annotationNoConfig]; skip {
				return nil
			}
			return a.load()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			a.close()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if isTerminal(cmd.InOrStdin()) && isTerminal(cmd.OutOrStdout()) {
				return runTUI(a)
			}
			return runREPL(a, cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}
	root.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return &CommandError{Command: cmd.Name(), Action: "parse", Reason: "invalid flags", Err: err}
	})

	flags := root.PersistentFlags()
	flags.StringVar(&a.opts.configPath, "config", "", "Config file (default: ~/.devconsole/config.toml)")
	flags.StringVar(&a.opts.valuesFile, "values", "", "Values file to load at start")
	flags.StringVar(&a.opts.logLevel, "log-level", "", "Log level: debug, info, warn, error or off")
	flags.StringVar(&a.opts.theme, "theme", "", "Color theme: auto, dark, light or none")
	flags.BoolVar(&a.opts.noBanner, "no-banner", false, "Do not print the help hint on start")
	flags.BoolVarP(&a.opts.watch, "watch", "w", false, "Reload the values file when it changes")

	root.AddCommand(
		newTUICmd(a),
		newREPLCmd(a),
		newRunCmd(a),
		newDocsCmd(a),
		newConfigCmd(a),
		newVersionCmd(),
	)
	return root
}

// Execute runs the command line and returns the process exit code.
func Execute() int {
	root := NewRootCmd()
	if err := root.Execute(); err != nil {
		DisplayError(root.ErrOrStderr(), err)
		return GetExitCode(err)
	}
	return ExitSuccess
}
