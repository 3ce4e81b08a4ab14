package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"uidfield/internal/config"
	"uidfield/internal/format"
	"uidfield/internal/logx"
	"uidfield/internal/tui"
	"uidfield/internal/uidapi"
	"uidfield/internal/uidfield"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const annotationTUI = "uidfield/tui"

type App struct {
	ConfigPath string
	Format     string
	PrettyJSON bool

	cfg    *config.Config
	loader *config.Loader
	level  zap.AtomicLevel
	zl     *zap.Logger
	log    logx.Logger

	runForm    func(tui.Options) (tui.Result, error)
	newService func(*App) (uidfield.Service, error)
}

func newApp() *App {
	return &App{
		level:      zap.NewAtomicLevel(),
		log:        logx.Nop(),
		runForm:    tui.Run,
		newService: httpService,
	}
}

func NewRootCmd() *cobra.Command {
	return newRootCmd(newApp())
}

func newRootCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "uidfield",
		Short:         "Edit a content entry's UID field with live generation and availability checks",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		Annotations:   map[string]string{annotationTUI: "true"},
		Example: strings.TrimSpace(`
  # Edit the slug of a new article, generated from its title
  uidfield --content-type application::article.article --target-field title

  # Edit an existing entry and write the result to a file
  uidfield edit --content-type application::article.article --record entry.json --out entry.json

  # Scriptable one-shots
  uidfield generate --content-type application::article.article --record entry.json
  uidfield check my-post --content-type application::article.article
`),
	}
	editFlags := bindEditFlags(cmd)
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		return runEdit(cmd, app, editFlags)
	}

	cmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		return app.setup(cmd)
	}
	cmd.PersistentPostRun = func(cmd *cobra.Command, args []string) {
		app.close()
	}

	cmd.PersistentFlags().StringVar(&app.ConfigPath, "config", envOr("UIDFIELD_CONFIG", ""), "Config file (default: $UIDFIELD_CONFIG_DIR/config.yaml or ~/.uidfield/config.yaml)")
	cmd.PersistentFlags().String("url", "", "Admin API base URL (default http://localhost:1337)")
	cmd.PersistentFlags().String("token", "", "Bearer token for the admin API")
	cmd.PersistentFlags().Duration("timeout", 0, "Request timeout (default 10s)")
	cmd.PersistentFlags().String("format", "", "Output format (json|edn)")
	cmd.PersistentFlags().Bool("pretty", false, "Pretty-print output")
	cmd.PersistentFlags().String("log-file", "", "Write JSON logs to this file (rotated)")
	cmd.PersistentFlags().String("log-level", "", "Log level (debug|info|warn|error)")

	cmd.AddCommand(newEditCmd(app))
	cmd.AddCommand(newGenerateCmd(app))
	cmd.AddCommand(newCheckCmd(app))
	cmd.AddCommand(newConfigCmd(app))
	cmd.AddCommand(newDocsCmd(app))

	return cmd
}

func (app *App) setup(cmd *cobra.Command) error {
	cfg, loader, err := config.Load(app.ConfigPath, cmd.Flags())
	if err != nil {
		return writeErr(cmd, err)
	}
	app.cfg = cfg
	app.loader = loader
	app.Format = cfg.Format
	app.PrettyJSON = cfg.Pretty

	interactive := cmd.Annotations[annotationTUI] == "true"
	zl, err := logx.New(logx.Options{
		Name:        "uidfield",
		Level:       cfg.Log.Level,
		File:        cfg.Log.File,
		MaxSize:     cfg.Log.MaxSize,
		MaxBackups:  cfg.Log.MaxBackups,
		MaxAge:      cfg.Log.MaxAge,
		Compress:    cfg.Log.Compress,
		Console:     !interactive,
		AtomicLevel: &app.level,
	})
	if err != nil {
		return writeErr(cmd, fmt.Errorf("init logging: %w", err))
	}
	app.zl = zl
	app.log = logx.NewZapLogger(zl).With(zap.String("command", cmd.Name()))
	return nil
}

func (app *App) close() {
	if app.zl != nil {
		_ = app.zl.Sync()
	}
}

// watchConfig follows config file edits while a long-running command is up.
// Only the log level is live; other settings apply on the next run.
func (app *App) watchConfig() {
	if app.loader == nil {
		return
	}
	app.loader.Watch(func(cfg *config.Config, err error) {
		if err != nil {
			logx.ReportSysError(context.Background(), app.log, logx.NewSysLog("config.reload", err))
			return
		}
		app.level.SetLevel(logx.ParseLevel(cfg.Log.Level))
		app.log.Info("config reloaded", zap.String("log_level", app.level.String()))
	})
}

func httpService(app *App) (uidfield.Service, error) {
	return uidapi.NewClient(uidapi.Options{
		BaseURL: app.cfg.URL,
		Token:   app.cfg.Token,
		Timeout: app.cfg.Timeout,
		Logger:  app.log,
	})
}

func (app *App) service() (uidfield.Service, error) {
	svc, err := app.newService(app)
	if err != nil {
		return nil, fmt.Errorf("create api client: %w", err)
	}
	return svc, nil
}

func envOr(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func writeOut(cmd *cobra.Command, app *App, v any) error {
	return format.Write(cmd.OutOrStdout(), v, app.Format, app.PrettyJSON)
}

func writeErr(cmd *cobra.Command, err error) error {
	fmt.Fprintln(cmd.ErrOrStderr(), err.Error())
	return err
}
