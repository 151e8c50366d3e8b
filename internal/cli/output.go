package cli

import (
	"io"
	"os"

	"github.com/fatih/color"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	logLevel           = zap.NewAtomicLevelAt(zapcore.InfoLevel)
	logOut   io.Writer = os.Stderr
	log                = newLogger(logOut)
)

var (
	headingColor = color.New(color.FgCyan, color.Bold)
	okColor      = color.New(color.FgGreen)
	dimColor     = color.New(color.Faint)
)

// newLogger builds a console logger for CLI messages: no timestamps or
// callers, just the level and the message.
func newLogger(w io.Writer) *zap.SugaredLogger {
	encCfg := zap.NewDevelopmentEncoderConfig()
	encCfg.TimeKey = ""
	encCfg.CallerKey = ""
	encCfg.NameKey = ""
	encCfg.StacktraceKey = ""
	encCfg.EncodeLevel = zapcore.LowercaseLevelEncoder
	encCfg.ConsoleSeparator = ": "
	if !color.NoColor {
		encCfg.EncodeLevel = zapcore.LowercaseColorLevelEncoder
	}

	core := zapcore.NewCore(zapcore.NewConsoleEncoder(encCfg), zapcore.AddSync(w), logLevel)
	return zap.New(core).Sugar()
}

// setLevel maps the configured logging level onto the logger. "quiet" keeps
// warnings and errors only.
func setLevel(name string) {
	switch name {
	case "quiet":
		logLevel.SetLevel(zapcore.WarnLevel)
	case "debug":
		logLevel.SetLevel(zapcore.DebugLevel)
	default:
		logLevel.SetLevel(zapcore.InfoLevel)
	}
	log = newLogger(logOut)
}

func infof(format string, args ...any) {
	log.Infof(format, args...)
}

func debugf(format string, args ...any) {
	log.Debugf(format, args...)
}

func warnf(format string, args ...any) {
	log.Warnf(format, args...)
}

func errorf(format string, args ...any) {
	log.Errorf(format, args...)
}
