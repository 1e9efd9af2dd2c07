package main

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type kvLists struct {
	values   []zap.Field
	previous *kvLists
}

func (list *kvLists) appendTo(t []zap.Field) []zap.Field {
	if list.previous != nil {
		t = list.previous.appendTo(t)
	}
	t = append(t, list.values...)
	return t
}

var logger = newConsoleLogger(zapcore.WarnLevel)

func newConsoleLogger(l zapcore.Level) *zap.Logger {
	writeSyncer := zapcore.Lock(zapcore.AddSync(os.Stderr))
	encoder := zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig())
	return zap.New(zapcore.NewCore(encoder, writeSyncer, l))
}

func SetLevel(l zapcore.Level) {
	logger = newConsoleLogger(l)
}

type kvKey struct{}

// CtxAddKvs attaches key/value pairs to ctx. Keys are stringified, values keep
// their type. A trailing key without a value is ignored.
func CtxAddKvs(ctx context.Context, kvs ...interface{}) context.Context {
	if len(kvs) < 2 {
		return ctx
	}

	var fields = make([]zap.Field, 0, len(kvs)/2)

	for i := 0; i+1 < len(kvs); i += 2 {
		key := fmt.Sprint(kvs[i])
		fields = append(fields, zap.Any(key, kvs[i+1]))
	}

	previous, _ := ctx.Value(kvKey{}).(*kvLists)
	newList := &kvLists{
		values:   fields,
		previous: previous,
	}

	return context.WithValue(ctx, kvKey{}, newList)
}

func LoggerOf(ctx context.Context) *zap.Logger {
	return logger.With(getKvList(ctx)...)
}

func getKvList(ctx context.Context) []zap.Field {
	list, _ := ctx.Value(kvKey{}).(*kvLists)
	if list == nil {
		return nil
	}

	return list.appendTo(nil)
}
