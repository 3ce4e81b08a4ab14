package cli

import (
	"context"
	"errors"

	"uidfield/internal/logx"
	"uidfield/internal/uidfield"

	"github.com/spf13/cobra"
)

func newGenerateCmd(app *App) *cobra.Command {
	var contentType, field, record string
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Ask the server for a UID derived from an entry",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ct := resolveContentType(app, contentType)
			if ct == "" {
				return writeErr(cmd, errors.New("missing --content-type"))
			}
			data, err := readRecord(cmd, record)
			if err != nil {
				return writeErr(cmd, err)
			}
			svc, err := app.service()
			if err != nil {
				return writeErr(cmd, err)
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), app.cfg.Timeout)
			defer cancel()
			uid, err := svc.Generate(ctx, uidfield.GenerateRequest{ContentTypeUID: ct, Field: field, Data: data})
			if err != nil {
				logx.ReportSysError(ctx, app.log, logx.NewSysLog("uid.generate", err))
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"value": uid})
		},
	}
	cmd.Flags().StringVar(&contentType, "content-type", "", "Content type UID")
	cmd.Flags().StringVar(&field, "field", "slug", "UID field name")
	cmd.Flags().StringVar(&record, "record", "", "JSON file with the entry's data (- for stdin)")
	return cmd
}
