package cli

import (
	"github.com/spf13/cobra"
)

func newConfigCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration (token redacted)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c := app.cfg.Redacted()
			return writeOut(cmd, app, map[string]any{
				"configFile":  app.loader.Path(),
				"url":         c.URL,
				"token":       c.Token,
				"timeout":     c.Timeout.String(),
				"contentType": c.ContentType,
				"format":      c.Format,
				"pretty":      c.Pretty,
				"log": map[string]any{
					"level":      c.Log.Level,
					"file":       c.Log.File,
					"maxSize":    c.Log.MaxSize,
					"maxBackups": c.Log.MaxBackups,
					"maxAge":     c.Log.MaxAge,
					"compress":   c.Log.Compress,
				},
				"tui": map[string]any{
					"theme":  c.TUI.Theme,
					"glyphs": c.TUI.Glyphs,
				},
			})
		},
	}
}
