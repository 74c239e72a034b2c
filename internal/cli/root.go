package cli

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/lu-zhengda/mailbox/internal/config"
	"github.com/lu-zhengda/mailbox/internal/mailbox"
	"github.com/lu-zhengda/mailbox/internal/mailfile"
)

var (
	// version is set via ldflags at build time.
	version = "dev"
	cfgFile string

	// fileFlag overrides the mailbox file from the config.
	fileFlag string

	// jsonFlag enables JSON output for all commands.
	jsonFlag bool

	logLevelFlag string
)

func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "mailbox",
		Short:         "Threaded mailbox viewer",
		Long:          "Inspect a mailbox file in time order or grouped into reply threads.",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if s.cfg.View.Default == config.ViewTimestamp {
				return printEmails(out, s.mb, s.mb.TimestampView())
			}
			return printThreads(out, s.mb, s.mb.Threads())
		},
	}
	root.SetVersionTemplate(fmt.Sprintf("mailbox %s\n", version))
	root.CompletionOptions.DisableDefaultCmd = true
	root.PersistentFlags().StringVar(&cfgFile, "config", "", "config file path")
	root.PersistentFlags().StringVarP(&fileFlag, "file", "f", "", "mailbox file (.toml, .yaml, .json, .db); defaults to config mailbox.file")
	root.PersistentFlags().BoolVar(&jsonFlag, "json", false, "output in JSON format")
	root.PersistentFlags().StringVar(&logLevelFlag, "log-level", "", "log level (debug, info, warn, error)")
	root.AddCommand(newListCmd())
	root.AddCommand(newRangeCmd())
	root.AddCommand(newThreadsCmd())
	root.AddCommand(newThreadCmd())
	root.AddCommand(newShowCmd())
	root.AddCommand(newCountCmd())
	root.AddCommand(newAddCmd())
	root.AddCommand(newMarkCmd())
	root.AddCommand(newDeleteCmd())
	root.AddCommand(newClearCmd())
	return root
}

func Execute() {
	cmd := NewRootCmd()
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(cmd.ErrOrStderr(), "Error:", err)
		os.Exit(1)
	}
}

// session is a mailbox loaded from a file for the duration of one command.
type session struct {
	cfg    *config.Config
	logger *slog.Logger
	path   string
	mb     *mailbox.MailBox
}

// openSession loads config, sets up logging and reads the mailbox file.
func openSession(cmd *cobra.Command) (*session, error) {
	s, err := newSession(cmd)
	if err != nil {
		return nil, err
	}
	file, err := mailfile.Load(s.path)
	if err != nil {
		return nil, fmt.Errorf("failed to load mailbox: %w", err)
	}
	n := mailfile.Populate(s.mb, file, s.logger)
	s.logger.Debug("loaded mailbox", "file", s.path, "messages", n)
	return s, nil
}

// openOrCreateSession is openSession for commands that may start a new
// mailbox file.
func openOrCreateSession(cmd *cobra.Command) (*session, error) {
	s, err := openSession(cmd)
	if err == nil {
		return s, nil
	}
	if !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}
	s, err = newSession(cmd)
	if err != nil {
		return nil, err
	}
	s.logger.Info("creating mailbox file", "file", s.path)
	return s, nil
}

func newSession(cmd *cobra.Command) (*session, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	logger, err := newLogger(cmd.ErrOrStderr(), cfg)
	if err != nil {
		return nil, err
	}
	path := fileFlag
	if path == "" {
		path = cfg.Mailbox.File
	}
	return &session{cfg: cfg, logger: logger, path: path, mb: mailbox.New()}, nil
}

// save writes the mailbox, read flags included, back to its file.
func (s *session) save() error {
	if err := mailfile.Save(s.path, mailfile.Capture(s.mb)); err != nil {
		return fmt.Errorf("failed to save mailbox: %w", err)
	}
	s.logger.Debug("saved mailbox", "file", s.path, "messages", s.mb.Count())
	return nil
}

// loadConfig loads the application configuration from the config file.
func loadConfig() (*config.Config, error) {
	path := cfgFile
	if path == "" {
		path = filepath.Join(config.ConfigDir(), "config.toml")
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, nil
}

// newLogger builds a text logger on w at the configured level; --log-level
// wins over the config file.
func newLogger(w io.Writer, cfg *config.Config) (*slog.Logger, error) {
	name := cfg.Log.Level
	if logLevelFlag != "" {
		name = logLevelFlag
	}
	level, err := config.ParseLevel(name)
	if err != nil {
		return nil, err
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})), nil
}
