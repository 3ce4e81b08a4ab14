package cli

import (
	"context"
	"errors"
	"strings"

	"uidfield/internal/logx"
	"uidfield/internal/uidfield"

	"github.com/spf13/cobra"
)

func newCheckCmd(app *App) *cobra.Command {
	var contentType, field string
	cmd := &cobra.Command{
		Use:   "check <value>",
		Short: "Check whether a UID is available",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ct := resolveContentType(app, contentType)
			if ct == "" {
				return writeErr(cmd, errors.New("missing --content-type"))
			}
			if err := uidfield.Validate(field, args[0], false, nil); err != nil {
				return writeErr(cmd, err)
			}
			req := uidfield.CheckRequest{ContentTypeUID: ct, Field: field}
			if v := strings.TrimSpace(args[0]); v != "" {
				req.Value = &v
			}
			svc, err := app.service()
			if err != nil {
				return writeErr(cmd, err)
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), app.cfg.Timeout)
			defer cancel()
			res, err := svc.CheckAvailability(ctx, req)
			if err != nil {
				logx.ReportSysError(ctx, app.log, logx.NewSysLog("uid.check_availability", err))
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, res)
		},
	}
	cmd.Flags().StringVar(&contentType, "content-type", "", "Content type UID")
	cmd.Flags().StringVar(&field, "field", "slug", "UID field name")
	return cmd
}
