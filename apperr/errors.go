package apperr

const (
	CodeBadParam      = 400
	CodeNotFound      = 404
	CodeSubscribeFail = 409
	CodeDBFail        = 500
	CodeDispatchFail  = 502
)

// BizError reports a failure the caller can act on, such as bad input or
// a missing aggregate.
func BizError(code int, message string, parent ...error) AppError {
	return newAppError(ErrTypeBiz, code, message, parent...)
}

// SysError reports an infrastructure failure.
func SysError(code int, message string, parent ...error) AppError {
	return newAppError(ErrTypeSys, code, message, parent...)
}

func ErrBadParam(msg string, v interface{}) AppError {
	return BizError(CodeBadParam, msg).With("params", v)
}

func ErrNotFound(msg string, k string, v interface{}) AppError {
	return BizError(CodeNotFound, msg).With(k, v)
}

func ErrDBFail(ori error, msg string) AppError {
	return SysError(CodeDBFail, msg, ori)
}

// ErrDispatchFail reports listeners of topic that failed while an event
// was being delivered.
func ErrDispatchFail(ori error, topic string) AppError {
	return SysError(CodeDispatchFail, "event dispatch failed", ori).With("topic", topic)
}

// ErrSubscribeFail reports a rejected subscription.
func ErrSubscribeFail(ori error, subscriber string) AppError {
	return BizError(CodeSubscribeFail, "subscribe failed", ori).With("subscriber", subscriber)
}
