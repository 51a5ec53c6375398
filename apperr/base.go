package apperr

import (
	"fmt"
	"strings"
)

type ErrType string

const (
	ErrTypeOther ErrType = "UNKNOWN_ERROR"
	ErrTypeBiz   ErrType = "BIZ_ERROR"
	ErrTypeSys   ErrType = "SYS_ERROR"
)

type AppError interface {
	error
	Code() int
	Message() string
	Parent() error
	// With 用来保存错误发生时的上下文信息
	// 比如参数错误，可以通过With记录下当时请求的具体参数值 With("params", req)
	With(k string, v interface{}) AppError
	Context() map[string]interface{}
	ErrType() ErrType
}

// appError backs both biz and sys errors; they differ only in errType.
type appError struct {
	errType ErrType
	code    int
	message string
	parent  error
	keys    []string
	values  map[string]interface{}
}

func newAppError(errType ErrType, code int, message string, parent ...error) *appError {
	e := &appError{errType: errType, code: code, message: message}
	if len(parent) > 0 {
		e.parent = parent[0]
	}
	return e
}

// With keeps the first-recorded order of keys so Error output is stable.
func (e *appError) With(k string, v interface{}) AppError {
	if e.values == nil {
		e.values = make(map[string]interface{})
	}
	if _, ok := e.values[k]; !ok {
		e.keys = append(e.keys, k)
	}
	e.values[k] = v
	return e
}

func (e *appError) Error() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "[%s-%d] %s", e.ErrType(), e.code, e.message)
	if e.parent != nil {
		fmt.Fprintf(&sb, ", parent error is %v", e.parent)
	}
	if len(e.keys) > 0 {
		sb.WriteString("; ctx is")
		for _, k := range e.keys {
			fmt.Fprintf(&sb, " %s=%v", k, e.values[k])
		}
	}
	return sb.String()
}

func (e *appError) ErrType() ErrType {
	if e.errType == "" {
		return ErrTypeOther
	}
	return e.errType
}

func (e *appError) Code() int {
	return e.code
}

// Message falls back to the parent's message when none was given.
func (e *appError) Message() string {
	switch {
	case e.message != "":
		return e.message
	case e.parent == nil:
		return ""
	}
	if pe, ok := e.parent.(AppError); ok {
		return pe.Message()
	}
	return e.parent.Error()
}

func (e *appError) Parent() error {
	return e.parent
}

func (e *appError) Unwrap() error {
	return e.parent
}

// Cause lets github.com/pkg/errors.Cause walk through app errors.
func (e *appError) Cause() error {
	return e.parent
}

// Context returns a copy of the values recorded with With.
func (e *appError) Context() map[string]interface{} {
	rlt := make(map[string]interface{}, len(e.values))
	for k, v := range e.values {
		rlt[k] = v
	}
	return rlt
}
