package hsl

import (
	"errors"
	"fmt"
)

// Kind groups routing failures by how the HTTP layer should report them.
type Kind string

const (
	KindAPI     Kind = "api"
	KindNetwork Kind = "network"
	KindData    Kind = "data"
	KindOther   Kind = "other"
)

type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return e.Msg
	}
	if e.Msg == "" {
		return e.Err.Error()
	}
	return fmt.Sprintf("%s: %v", e.Msg, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// KindOf returns the failure kind, KindOther for foreign errors.
func KindOf(err error) Kind {
	var target *Error
	if errors.As(err, &target) {
		return target.Kind
	}
	return KindOther
}
