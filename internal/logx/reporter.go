package logx

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
)

// SysLog is the typed input for technical failures, so action and error can't be swapped.
type SysLog struct {
	Action string
	Err    error
}

func NewSysLog(action string, err error) SysLog {
	return SysLog{Action: action, Err: err}
}

// ReportSysError logs a technical failure at ERROR with err_type=sys and the unwrap chain.
func ReportSysError(ctx context.Context, l Logger, sys SysLog, fields ...zap.Field) {
	if sys.Err == nil || l == nil {
		return
	}
	action := sys.Action
	if action == "" {
		action = "sys_error"
	}

	base := []zap.Field{
		zap.String("err_type", "sys"),
		zap.String("action", action),
		zap.Error(sys.Err),
	}
	if chain := causeChain(sys.Err, 20); len(chain) != 0 {
		base = append(base, zap.Strings("cause_chain", chain))
	}
	base = append(base, fields...)

	l.WithContext(ctx).Error(fmt.Sprintf("%s, error:%s", action, sys.Err.Error()), base...)
}

func causeChain(err error, maxDepth int) []string {
	if err == nil || maxDepth <= 0 {
		return nil
	}
	out := make([]string, 0, 4)
	cur := errors.Unwrap(err)
	for i := 0; i < maxDepth && cur != nil; i++ {
		out = append(out, fmt.Sprintf("%T: %v", cur, cur))
		cur = errors.Unwrap(cur)
	}
	return out
}
