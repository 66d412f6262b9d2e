package logger

import (
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	global *zap.SugaredLogger
	level  = zap.NewAtomicLevelAt(zap.InfoLevel)
)

// Init builds the process-wide logger. Output goes to stderr so stdout stays
// reserved for command results.
func Init(levelName string) (*zap.SugaredLogger, error) {
	if err := SetLevel(levelName); err != nil {
		return nil, err
	}

	encCfg := zap.NewDevelopmentEncoderConfig()
	encCfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
	encCfg.EncodeTime = zapcore.TimeEncoderOfLayout("2006-01-02 15:04:05")

	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encCfg),
		zapcore.Lock(os.Stderr),
		level,
	)
	z := zap.New(core).Sugar()
	global = z
	zap.ReplaceGlobals(z.Desugar())
	return z, nil
}

// Replace installs an already built logger, e.g. one carrying extra fields.
func Replace(z *zap.SugaredLogger) {
	global = z
}

// Logger returns the process-wide logger. Before Init it is a no-op logger.
func Logger() *zap.SugaredLogger {
	if global == nil {
		return zap.NewNop().Sugar()
	}
	return global
}

// SetLevel changes the level of the process-wide logger. An empty name keeps
// the current level.
func SetLevel(levelName string) error {
	if levelName == "" {
		return nil
	}
	var l zapcore.Level
	if err := l.UnmarshalText([]byte(strings.ToLower(levelName))); err != nil {
		return fmt.Errorf("invalid log level %q: %w", levelName, err)
	}
	level.SetLevel(l)
	return nil
}

// Level reports the current level name.
func Level() string {
	return level.Level().String()
}

func Sync() {
	if global != nil {
		_ = global.Sync()
	}
}
