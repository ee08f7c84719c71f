package aiagents

import (
	"context"
	"errors"
	"fmt"
	"net"
)

// Reason classifies why an insight call produced no usable response.
type Reason string

const (
	ReasonTimeout   Reason = "timeout"
	ReasonCanceled  Reason = "canceled"
	ReasonTransport Reason = "transport"
	ReasonStatus    Reason = "status"
	ReasonDecode    Reason = "decode"
	ReasonEncode    Reason = "encode"
)

// Error describes a failed insight call. It is informational: the
// accompanying response is always the empty one and safe to apply.
type Error struct {
	Reason Reason
	Status int
	Err    error
}

func (e *Error) Error() string {
	switch {
	case e.Reason == ReasonStatus:
		return fmt.Sprintf("ai-agents api returned status code: %d", e.Status)
	case e.Err != nil:
		return fmt.Sprintf("ai-agents api %s: %v", e.Reason, e.Err)
	default:
		return fmt.Sprintf("ai-agents api %s", e.Reason)
	}
}

func (e *Error) Unwrap() error { return e.Err }

// ReasonOf extracts the failure reason, "" when err is nil or foreign.
func ReasonOf(err error) Reason {
	var target *Error
	if errors.As(err, &target) {
		return target.Reason
	}
	return ""
}

func classifyTransport(ctx context.Context, err error) Reason {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return ReasonTimeout
	}
	if errors.Is(err, context.Canceled) || errors.Is(ctx.Err(), context.Canceled) {
		return ReasonCanceled
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return ReasonTimeout
	}
	return ReasonTransport
}
