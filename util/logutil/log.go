// Copyright 2023 Hopgraph, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package logutil

import (
	"context"

	"github.com/pingcap/errors"
	"github.com/pingcap/log"
	"go.uber.org/zap"
)

const (
	// DefaultLogLevel is the default log level.
	DefaultLogLevel = "info"
	// DefaultLogFormat is the default format of the log.
	DefaultLogFormat = "text"
	// DefaultLogMaxSize is the default size of a log file in MB before rotation.
	DefaultLogMaxSize = 300
)

// NewLogConfig creates a LogConfig for the given level and format.
func NewLogConfig(level, format, file string) *log.Config {
	return &log.Config{
		Level:  level,
		Format: format,
		File: log.FileLogConfig{
			Filename: file,
			MaxSize:  DefaultLogMaxSize,
		},
	}
}

// InitLogger initializes the global logger.
func InitLogger(cfg *log.Config) error {
	gl, props, err := log.InitLogger(cfg, zap.AddStacktrace(zap.FatalLevel))
	if err != nil {
		return errors.Trace(err)
	}
	log.ReplaceGlobals(gl, props)
	return nil
}

type ctxLogKeyType struct{}

// CtxLogKey indexes the logger attached to a context.
var CtxLogKey = ctxLogKeyType{}

// Logger gets a contextual logger from the current context. If the context
// has no logger attached, it returns the global logger.
func Logger(ctx context.Context) *zap.Logger {
	if ctxLogger, ok := ctx.Value(CtxLogKey).(*zap.Logger); ok {
		return ctxLogger
	}
	return log.L()
}

// BgLogger is the logger for background tasks that are not bound to a query.
func BgLogger() *zap.Logger {
	return log.L()
}

// WithLogger attaches a logger with extra fields to the context.
func WithLogger(ctx context.Context, fields ...zap.Field) context.Context {
	return context.WithValue(ctx, CtxLogKey, log.L().With(fields...))
}
