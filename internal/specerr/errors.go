package specerr

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrUnknownParameter         = errors.New("unknown parameter")
	ErrIndexOutOfRange          = errors.New("index out of range")
	ErrBadAccessPattern         = errors.New("bad access pattern")
	ErrWrongDimensionTag        = errors.New("wrong dimension tag")
	ErrDuplicateRegistration    = errors.New("duplicate registration")
	ErrScaleOutOfValidatedRange = errors.New("scale out of validated range")
	ErrIntegrationDivergence    = errors.New("integration divergence")
	ErrAlreadyInitialized       = errors.New("already initialized")

	// ErrCollectiveMismatch names the caller error of invoking a collective
	// operation from a subset of the group. It is never returned: the
	// symptom is a hang. It exists so documentation and logs can refer to it.
	ErrCollectiveMismatch = errors.New("collective mismatch")
)

// ParamError describes a failed lookup or mutation of a named quantity.
type ParamError struct {
	Op      string // e.g. "get_mass", "pole_mass", "register"
	Key     string
	Indices []int
	Err     error  // one of the sentinels
	Detail  string // optional human-readable context
}

func (e *ParamError) Error() string {
	var b strings.Builder
	b.WriteString(e.Op)
	fmt.Fprintf(&b, " %q", e.Key)
	if len(e.Indices) > 0 {
		parts := make([]string, len(e.Indices))
		for i, idx := range e.Indices {
			parts[i] = fmt.Sprint(idx)
		}
		b.WriteString("(" + strings.Join(parts, ",") + ")")
	}
	b.WriteString(": ")
	b.WriteString(e.Err.Error())
	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	}
	return b.String()
}

func (e *ParamError) Unwrap() error { return e.Err }

// New builds a ParamError. Indices are copied.
func New(op, key string, indices []int, err error, detail string) *ParamError {
	var idx []int
	if len(indices) > 0 {
		idx = append([]int(nil), indices...)
	}
	return &ParamError{Op: op, Key: key, Indices: idx, Err: err, Detail: detail}
}
