// Package action wraps units of work with the fixed pipeline order:
// rate limit, authorization, validation, sanitization, mutation,
// audit. Every entry point converts failures into a Result at the
// boundary; no error or panic ever crosses into the HTTP layer.
package action

import (
	"context"
	"errors"
	"log/slog"

	"github.com/yeyclub/platform/internal/audit"
)

// Result is the uniform envelope returned by every action. Exactly one
// variant is populated: data on success, a user-presentable error
// string on failure.
type Result[T any] struct {
	Success bool   `json:"success"`
	Data    T      `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

// OK wraps a success value.
func OK[T any](data T) Result[T] {
	return Result[T]{Success: true, Data: data}
}

// Fail wraps a user-presentable failure message.
func Fail[T any](message string) Result[T] {
	return Result[T]{Success: false, Error: message}
}

// Void is the payload of actions without a return value.
type Void = struct{}

// Observer receives the outcome of each pipeline run. Satisfied by
// observability.Metrics.
type Observer interface {
	ObserveAction(action, outcome string)
}

// Pipeline carries the dependencies shared by all actions.
type Pipeline struct {
	logger   *slog.Logger
	audit    *audit.Logger
	observer Observer
}

// NewPipeline constructs a Pipeline.
func NewPipeline(logger *slog.Logger, auditLog *audit.Logger) *Pipeline {
	if logger == nil {
		logger = slog.Default()
	}
	return &Pipeline{logger: logger, audit: auditLog}
}

// WithObserver attaches an outcome observer. Nil observers are ignored.
func (p *Pipeline) WithObserver(obs Observer) *Pipeline {
	p.observer = obs
	return p
}

// Run executes a unit of work and shapes its outcome. The unit
// performs, in order: auth/ownership check, input validation,
// sanitization, and the persistence mutation. It returns the success
// payload plus audit metadata (actor and resource ids).
//
// Failure handling:
//   - *Error: message surfaced verbatim, logged at warn with its code;
//   - recognised persistence errors: mapped fixed message, warn;
//   - anything else (including panics): full detail logged at error,
//     generic message surfaced.
func Run[T any](ctx context.Context, p *Pipeline, name string, fn func(ctx context.Context) (T, map[string]any, error)) (res Result[T]) {
	defer func() {
		if r := recover(); r != nil {
			p.logger.Error("action panicked",
				slog.String("action", name), slog.Any("panic", r))
			p.observe(name, "panic")
			res = Fail[T](MsgUnexpected)
		}
	}()

	data, meta, err := fn(ctx)
	if err != nil {
		return failWith[T](p, name, err)
	}

	if p.audit != nil {
		p.audit.Record(ctx, name, meta)
	}
	p.observe(name, "success")
	return OK(data)
}

func (p *Pipeline) observe(name, outcome string) {
	if p.observer != nil {
		p.observer.ObserveAction(name, outcome)
	}
}

func failWith[T any](p *Pipeline, name string, err error) Result[T] {
	var actionErr *Error
	if errors.As(err, &actionErr) {
		p.logger.Warn("action failed",
			slog.String("action", name), slog.String("code", actionErr.Code))
		p.observe(name, "failure")
		return Fail[T](actionErr.Message)
	}
	if msg, code, ok := mapStoreError(err); ok {
		p.logger.Warn("action store error",
			slog.String("action", name), slog.String("code", code))
		p.observe(name, "failure")
		return Fail[T](msg)
	}
	p.logger.Error("action unexpected error",
		slog.String("action", name), slog.Any("error", err))
	p.observe(name, "error")
	return Fail[T](MsgUnexpected)
}
