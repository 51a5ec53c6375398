package apperr

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errListener = errors.New("listener failed")

func TestErrDispatchFail(t *testing.T) {
	err := ErrDispatchFail(errListener, "orders")

	assert.Equal(t, CodeDispatchFail, err.Code())
	assert.Equal(t, ErrTypeSys, err.ErrType())
	assert.Equal(t, "orders", err.Context()["topic"])
	assert.Contains(t, err.Error(), "[SYS_ERROR-502] event dispatch failed")
	assert.Contains(t, err.Error(), "listener failed")
}

func TestUnwrap(t *testing.T) {
	err := errors.Wrap(ErrDispatchFail(errListener, "orders"), "post")

	assert.True(t, errors.Is(err, errListener))
	assert.Equal(t, errListener, errors.Cause(err))
	assert.Equal(t, CodeDispatchFail, Code(err))
	assert.Equal(t, 0, Code(errListener))
}

func TestMessage(t *testing.T) {
	assert.Equal(t, "not here", ErrNotFound("not here", "id", 1).Message())
	assert.Equal(t, "listener failed", SysError(500, "", errListener).Message())
	assert.Equal(t, "inner", SysError(500, "", BizError(400, "inner")).Message())
}

func TestWithDoesNotLeakContext(t *testing.T) {
	err := ErrBadParam("bad", 3)
	ctx := err.Context()
	ctx["params"] = 4

	assert.Equal(t, 3, err.Context()["params"])
	assert.Equal(t, ErrTypeBiz, err.ErrType())
}

func TestErrorKeepsContextOrder(t *testing.T) {
	err := ErrNotFound("order not found", "id", 7).With("tenant", "acme").With("id", 8)

	assert.Equal(t, "[BIZ_ERROR-404] order not found; ctx is id=8 tenant=acme", err.Error())
}

func TestHandleAppErr(t *testing.T) {
	var got []AppError
	HandleAppErr(errors.WithStack(ErrSubscribeFail(errListener, "audit")), func(err AppError) {
		got = append(got, err)
	})
	require.Len(t, got, 1)
	assert.Equal(t, CodeSubscribeFail, got[0].Code())

	HandleAppErr(errListener, func(err AppError) {
		t.Fatal("plain errors carry no AppError")
	})
}
