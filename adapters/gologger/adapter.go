// Package gologger builds the glog logger used by the binaries. Records are
// JSON lines so CloudWatch can index the fields, and attributes stored on the
// context with slog-context are picked up by every record.
package gologger

import (
	"context"
	"io"
	"log/slog"
	"strings"

	"github.com/aws/aws-lambda-go/lambdacontext"
	glog "github.com/goliatone/go-logger/glog"
	slogctx "github.com/veqryn/slog-context"
)

type Options struct {
	Writer io.Writer
	// Level is one of trace, debug, info, warn, error or fatal.
	Level string
}

// New returns a JSON glog logger. Fatal only logs; a Lambda runtime reports
// the failure through the handler's return value instead of exiting.
func New(opts Options) *glog.BaseLogger {
	level := strings.TrimSpace(opts.Level)
	if level == "" {
		level = glog.Info
	}
	return glog.NewLogger(
		glog.WithLoggerTypeJSON(),
		glog.WithLevel(level),
		glog.WithWriter(opts.Writer),
		glog.WithHandlerWrapper(contextHandler),
		glog.WithFatalBehavior(glog.FatalBehaviorLogOnly),
	)
}

func contextHandler(next slog.Handler) slog.Handler {
	return slogctx.NewHandler(next, nil)
}

// ContextWithLambdaRequest stores the Lambda request id and function name on
// ctx so every record logged with that context carries them.
func ContextWithLambdaRequest(ctx context.Context) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	lc, ok := lambdacontext.FromContext(ctx)
	if !ok || lc == nil {
		return ctx
	}
	args := []any{"aws_request_id", lc.AwsRequestID}
	if name := strings.TrimSpace(lambdacontext.FunctionName); name != "" {
		args = append(args, "function_name", name)
	}
	return slogctx.Append(ctx, args...)
}
