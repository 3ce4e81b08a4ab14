package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"uidfield/internal/tui"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type editFlags struct {
	contentType string
	field       string
	targetField string
	record      string
	required    bool
	editable    bool
	description string
	out         string
}

// bindEditFlags registers the form flags; the root command shares them so a
// bare `uidfield` opens the form.
func bindEditFlags(cmd *cobra.Command) *editFlags {
	f := &editFlags{}
	cmd.Flags().StringVar(&f.contentType, "content-type", "", "Content type UID (e.g. application::article.article)")
	cmd.Flags().StringVar(&f.field, "field", "slug", "UID field name")
	cmd.Flags().StringVar(&f.targetField, "target-field", "", "Field the UID is generated from (empty disables auto-generation)")
	cmd.Flags().StringVar(&f.record, "record", "", "JSON file with the stored entry (absent or empty: new entry; - for stdin)")
	cmd.Flags().BoolVar(&f.required, "required", false, "The UID is required")
	cmd.Flags().BoolVar(&f.editable, "editable", true, "The UID can be edited and regenerated")
	cmd.Flags().StringVar(&f.description, "description", "", "Field description (markdown)")
	cmd.Flags().StringVar(&f.out, "out", "", "Write the saved entry to this JSON file instead of stdout")
	return f
}

func newEditCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:         "edit",
		Short:       "Open the interactive form",
		Args:        cobra.NoArgs,
		Annotations: map[string]string{annotationTUI: "true"},
	}
	f := bindEditFlags(cmd)
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		return runEdit(cmd, app, f)
	}
	return cmd
}

type editResult struct {
	Saved  bool           `json:"saved"`
	Out    string         `json:"out,omitempty"`
	Dirty  []string       `json:"dirty,omitempty"`
	Record map[string]any `json:"record,omitempty"`
}

func runEdit(cmd *cobra.Command, app *App, f *editFlags) error {
	contentType := resolveContentType(app, f.contentType)
	if contentType == "" {
		return writeErr(cmd, errors.New("missing --content-type"))
	}
	if strings.TrimSpace(f.field) == "" {
		return writeErr(cmd, errors.New("missing --field"))
	}
	initial, err := readRecord(cmd, f.record)
	if err != nil {
		return writeErr(cmd, err)
	}
	svc, err := app.service()
	if err != nil {
		return writeErr(cmd, err)
	}

	app.watchConfig()
	app.log.Info("form opened",
		zap.String("content_type", contentType),
		zap.String("field", f.field),
		zap.Bool("creating", len(initial) == 0))

	res, err := app.runForm(tui.Options{
		ContentTypeUID: contentType,
		Field:          f.field,
		TargetField:    f.targetField,
		Required:       f.required,
		Editable:       f.editable,
		Description:    f.description,
		Initial:        initial,
		Service:        svc,
		Logger:         app.log,
		Theme:          app.cfg.TUI.Theme,
		Glyphs:         app.cfg.TUI.Glyphs,
		RequestTimeout: app.cfg.Timeout,
	})
	if err != nil {
		return writeErr(cmd, err)
	}
	if !res.Saved {
		app.log.Info("form closed without saving")
		return writeOut(cmd, app, editResult{Saved: false})
	}

	out := editResult{Saved: true, Dirty: res.Dirty}
	if f.out != "" {
		b, err := json.MarshalIndent(res.Record, "", "  ")
		if err != nil {
			return writeErr(cmd, err)
		}
		if err := writeFileAtomic(f.out, append(b, '\n'), 0o644); err != nil {
			return writeErr(cmd, fmt.Errorf("write %s: %w", f.out, err))
		}
		out.Out = f.out
	} else {
		out.Record = res.Record
	}
	app.log.Info("entry saved", zap.Strings("dirty", res.Dirty))
	return writeOut(cmd, app, out)
}

func resolveContentType(app *App, flagValue string) string {
	if v := strings.TrimSpace(flagValue); v != "" {
		return v
	}
	if app.cfg != nil {
		return strings.TrimSpace(app.cfg.ContentType)
	}
	return ""
}
