// Package bridge exposes the engine as a method-channel style command surface.
package bridge

import (
	"context"
	"encoding/json"
	"log/slog"
	"math"
	"time"

	"github.com/aevon-lab/footprint/internal/core/emission"
	coreerr "github.com/aevon-lab/footprint/internal/core/errors"
	"github.com/aevon-lab/footprint/internal/estimate"
	"github.com/aevon-lab/footprint/internal/metrics"
)

const (
	MethodGetDailyUsage      = "getDailyUsage"
	MethodGetRangeUsage      = "getRangeUsage"
	MethodHasUsagePermission = "hasUsagePermission"
	MethodOpenUsageSettings  = "openUsageSettings"

	ArgStartTime = "startTime"
	ArgEndTime   = "endTime"
)

// Status is the outcome of one call.
type Status string

const (
	StatusOK             Status = "ok"
	StatusError          Status = "error"
	StatusNotImplemented Status = "not_implemented"
)

// Call is one command invocation.
type Call struct {
	Method    string
	Arguments map[string]any
}

// Response is the single reply to a Call. Result is set only on StatusOK,
// Error only on StatusError.
type Response struct {
	Status Status                 `json:"status"`
	Result any                    `json:"result"`
	Error  *coreerr.ErrorResponse `json:"error,omitempty"`
}

// UsageEstimator runs usage queries.
type UsageEstimator interface {
	DailyUsage(ctx context.Context) ([]emission.Estimate, error)
	RangeUsage(ctx context.Context, start, end time.Time) ([]emission.Estimate, error)
}

// PermissionGate checks and requests usage access.
type PermissionGate interface {
	HasUsagePermission(ctx context.Context) bool
	RequestPermissionFlow(ctx context.Context)
}

// Dispatcher routes calls to the estimator and the permission gate.
type Dispatcher struct {
	estimator UsageEstimator
	gate      PermissionGate
}

func NewDispatcher(estimator UsageEstimator, gate PermissionGate) *Dispatcher {
	if estimator == nil {
		panic("bridge: estimator must not be nil")
	}
	if gate == nil {
		panic("bridge: permission gate must not be nil")
	}
	return &Dispatcher{estimator: estimator, gate: gate}
}

// Invoke executes a call. It never panics on unknown methods or bad arguments.
func (d *Dispatcher) Invoke(ctx context.Context, call Call) Response {
	resp := d.invoke(ctx, call)
	metrics.CommandsTotal.WithLabelValues(methodLabel(call.Method), string(resp.Status)).Inc()
	return resp
}

func (d *Dispatcher) invoke(ctx context.Context, call Call) Response {
	switch call.Method {
	case MethodGetDailyUsage:
		return estimatesResponse(d.estimator.DailyUsage(ctx))

	case MethodGetRangeUsage:
		start, err := int64Arg(call.Arguments, ArgStartTime)
		if err != nil {
			return errorResponse(err)
		}
		end, err := int64Arg(call.Arguments, ArgEndTime)
		if err != nil {
			return errorResponse(err)
		}
		return estimatesResponse(d.estimator.RangeUsage(ctx, time.UnixMilli(start), time.UnixMilli(end)))

	case MethodHasUsagePermission:
		return Response{Status: StatusOK, Result: d.gate.HasUsagePermission(ctx)}

	case MethodOpenUsageSettings:
		d.gate.RequestPermissionFlow(ctx)
		return Response{Status: StatusOK}

	default:
		slog.Debug("[Bridge] Method not implemented", "method", call.Method)
		return Response{Status: StatusNotImplemented}
	}
}

func estimatesResponse(estimates []emission.Estimate, err error) Response {
	if err != nil {
		return errorResponse(err)
	}
	return Response{Status: StatusOK, Result: estimate.Entries(estimates)}
}

func errorResponse(err error) Response {
	kind := coreerr.KindOf(err)
	if kind == coreerr.KindInternal || kind == coreerr.KindProviderFailure {
		slog.Error("[Bridge] Command failed", "kind", kind, "error", err)
	}
	return Response{
		Status: StatusError,
		Error: &coreerr.ErrorResponse{
			ErrorType: string(kind),
			Message:   err.Error(),
		},
	}
}

// int64Arg reads an integral argument. JSON decoders hand numbers over as
// json.Number or float64; fractional or out-of-range values are rejected.
func int64Arg(args map[string]any, name string) (int64, error) {
	raw, ok := args[name]
	if !ok || raw == nil {
		return 0, coreerr.Newf(coreerr.KindInvalidArgument, "missing argument %q", name)
	}

	switch v := raw.(type) {
	case int64:
		return v, nil
	case int:
		return int64(v), nil
	case int32:
		return int64(v), nil
	case json.Number:
		n, err := v.Int64()
		if err != nil {
			return 0, coreerr.Newf(coreerr.KindInvalidArgument, "argument %q must be an integer, got %s", name, v.String())
		}
		return n, nil
	case float64:
		if v != math.Trunc(v) || math.IsInf(v, 0) || v >= math.MaxInt64 || v < math.MinInt64 {
			return 0, coreerr.Newf(coreerr.KindInvalidArgument, "argument %q must be an integer, got %v", name, v)
		}
		return int64(v), nil
	default:
		return 0, coreerr.Newf(coreerr.KindInvalidArgument, "argument %q must be an integer, got %T", name, raw)
	}
}

// methodLabel bounds metric cardinality for unknown methods.
func methodLabel(method string) string {
	switch method {
	case MethodGetDailyUsage, MethodGetRangeUsage, MethodHasUsagePermission, MethodOpenUsageSettings:
		return method
	default:
		return "unknown"
	}
}
