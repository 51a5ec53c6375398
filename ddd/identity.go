package ddd

import (
	"context"
)

// IdGenerator 生成int64类型唯一标识
type IdGenerator interface {
	Gen(ctx context.Context) (int64, error)
}

type IdGeneratorFunc func(ctx context.Context) (int64, error)

func (f IdGeneratorFunc) Gen(ctx context.Context) (int64, error) {
	return f(ctx)
}
