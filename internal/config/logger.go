package config

import (
	"errors"
	"io"
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/buffer"
	"go.uber.org/zap/zapcore"
	"golang.org/x/term"
)

// Prepare returns the console logger for the command. Entries below Error go
// to stdout, Error and above go to stderr. Level "none" discards everything.
func (conf LoggingConfig) Prepare(stdout, stderr io.Writer) *zap.Logger {
	lowPriority := zap.LevelEnablerFunc(func(lvl zapcore.Level) bool {
		return zapcore.InfoLevel <= lvl && lvl < zapcore.ErrorLevel
	})
	if strings.EqualFold(conf.Level, LogLevelDebug) {
		lowPriority = func(lvl zapcore.Level) bool {
			return zapcore.DebugLevel <= lvl && lvl < zapcore.ErrorLevel
		}
	}
	highPriority := zap.LevelEnablerFunc(func(lvl zapcore.Level) bool {
		return lvl >= zapcore.ErrorLevel
	})

	var consoleCoreLP, consoleCoreHP zapcore.Core
	switch strings.ToLower(conf.Level) {
	case LogLevelNone:
		consoleCoreLP = zapcore.NewNopCore()
		consoleCoreHP = zapcore.NewNopCore()
	default:
		consoleCoreLP = zapcore.NewCore(zapcore.NewConsoleEncoder(encoderConfig(stdout)),
			zapcore.Lock(zapcore.AddSync(stdout)), lowPriority)
		consoleCoreHP = zapcore.NewCore(newEncoder(encoderConfig(stderr)),
			zapcore.Lock(zapcore.AddSync(stderr)), highPriority)
	}

	return zap.New(zapcore.NewTee(consoleCoreHP, consoleCoreLP))
}

// encoderConfig uses colored levels without timestamps on terminals.
func encoderConfig(w io.Writer) zapcore.EncoderConfig {
	ec := zap.NewDevelopmentEncoderConfig()
	ec.EncodeCaller = nil
	if enableColorOutput(w) {
		ec.EncodeLevel = zapcore.CapitalColorLevelEncoder
		ec.TimeKey = zapcore.OmitKey
	} else {
		ec.EncodeLevel = zapcore.CapitalLevelEncoder
	}
	return ec
}

func enableColorOutput(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd())) // #nosec G115 -- file descriptors fit in int
}

// When logging errors to console do not output the verbose message.

type consoleEnc struct {
	zapcore.Encoder
}

func newEncoder(cfg zapcore.EncoderConfig) zapcore.Encoder {
	return consoleEnc{zapcore.NewConsoleEncoder(cfg)}
}

func (c consoleEnc) Clone() zapcore.Encoder {
	return consoleEnc{c.Encoder.Clone()}
}

func (c consoleEnc) EncodeEntry(ent zapcore.Entry, fields []zapcore.Field) (*buffer.Buffer, error) {
	newFields := make([]zapcore.Field, 0, len(fields))
	for _, f := range fields {
		if f.Type == zapcore.ErrorType {
			if e, ok := f.Interface.(error); ok {
				f.Interface = errors.New(e.Error())
			}
		}
		newFields = append(newFields, f)
	}
	return c.Encoder.EncodeEntry(ent, newFields)
}
