package rotolog

import (
	"errors"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// DefaultFlushInterval is used for buffered file sinks with no interval set.
const DefaultFlushInterval = time.Second

// stampLayout is RFC3339 with millisecond precision.
const stampLayout = "2006-01-02T15:04:05.000Z07:00"

// Guard owns the resources Init acquired for the file sink. Hold it for the
// life of the process and Close it on shutdown; there is no hidden global
// keeping the file open for you.
type Guard struct {
	writer   *Writer
	buffered *zapcore.BufferedWriteSyncer
}

// Writer exposes the rotating writer behind the file sink, for forced
// rotation or direct flushing. Nil when Init configured no file sink.
func (g *Guard) Writer() *Writer {
	if g == nil {
		return nil
	}

	return g.writer
}

// Close flushes any buffered output and closes the log file. Safe to call
// when no file sink was configured.
func (g *Guard) Close() error {
	if g == nil {
		return nil
	}

	if g.buffered != nil {
		if err := g.buffered.Stop(); err != nil {
			return fmt.Errorf("stopping buffered log sink: %w", err)
		}
	}

	if g.writer == nil {
		return nil
	}

	if err := g.writer.Flush(); err != nil {
		_ = g.writer.Close()

		return err
	}

	if err := g.writer.Close(); err != nil && !errors.Is(err, ErrClosed) {
		return err
	}

	return nil
}

// Init builds a zap logger from the configuration: a console core, a
// rotating file core, or a tee of both. The returned Guard must be closed
// on shutdown to flush and release the log file.
func Init(config *Config) (*zap.Logger, *Guard, error) {
	if config == nil {
		config = NewConfig()
	}

	if err := config.Validate(); err != nil {
		return nil, nil, err
	}

	levelName := config.Level
	if levelName == "" {
		levelName = DefaultLevel
	}

	level, err := zapcore.ParseLevel(levelName)
	if err != nil {
		return nil, nil, fmt.Errorf("parsing log level: %w", err)
	}

	var (
		cores []zapcore.Core
		guard = &Guard{}
	)

	if config.Console {
		cores = append(cores, zapcore.NewCore(newEncoder(config.Format), zapcore.Lock(os.Stderr), level))
	}

	if config.File != nil {
		core, err := newFileCore(config, level, guard)
		if err != nil {
			return nil, nil, err
		}

		cores = append(cores, core)
	}

	if len(cores) == 0 {
		return zap.NewNop(), guard, nil
	}

	return zap.New(zapcore.NewTee(cores...)), guard, nil
}

// newFileCore opens the rotating writer and stashes it (and the optional
// write buffer) in the guard for shutdown.
func newFileCore(config *Config, level zapcore.Level, guard *Guard) (zapcore.Core, error) {
	writer, err := New(config.File.Path, config.File.Rotation)
	if err != nil {
		return nil, err
	}

	guard.writer = writer

	var syncer zapcore.WriteSyncer = zapcore.AddSync(writer)

	if config.File.Buffered {
		interval := config.File.FlushInterval
		if interval <= 0 {
			interval = DefaultFlushInterval
		}

		guard.buffered = &zapcore.BufferedWriteSyncer{WS: syncer, FlushInterval: interval}
		syncer = guard.buffered
	}

	return zapcore.NewCore(newEncoder(config.Format), syncer, level), nil
}

// newEncoder builds the text or JSON encoder with RFC3339-ms timestamps.
func newEncoder(format string) zapcore.Encoder {
	cfg := zap.NewProductionEncoderConfig()
	cfg.EncodeTime = zapcore.TimeEncoderOfLayout(stampLayout)

	if format == "json" {
		return zapcore.NewJSONEncoder(cfg)
	}

	cfg.EncodeLevel = zapcore.CapitalLevelEncoder

	return zapcore.NewConsoleEncoder(cfg)
}
