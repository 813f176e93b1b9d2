package logging

import (
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	cfg = zap.Config{
		Level:       zap.NewAtomicLevelAt(zap.InfoLevel),
		Development: false,
		Encoding:    "console",
		EncoderConfig: zapcore.EncoderConfig{
			TimeKey:        "ts",
			LevelKey:       "level",
			NameKey:        "logger",
			CallerKey:      "caller",
			FunctionKey:    zapcore.OmitKey,
			MessageKey:     "msg",
			StacktraceKey:  "stacktrace",
			LineEnding:     zapcore.DefaultLineEnding,
			EncodeLevel:    zapcore.LowercaseLevelEncoder,
			EncodeTime:     zapcore.RFC3339NanoTimeEncoder,
			EncodeDuration: zapcore.SecondsDurationEncoder,
			EncodeCaller:   zapcore.ShortCallerEncoder,
		},
		OutputPaths:      []string{"stdout"},
		ErrorOutputPaths: []string{"stdout"},
	}
	leveler = &levelSetter{
		levels: make(map[string]zap.AtomicLevel),
	}
)

// Leveler adjusts the level of named loggers at runtime.
type Leveler interface {
	SetLevel(name string, level zapcore.Level)
	GetLevel(name string) zapcore.Level
	Names() []string
}

type levelSetter struct {
	levels map[string]zap.AtomicLevel
	mu     sync.RWMutex
}

var _ Leveler = (*levelSetter)(nil)

func GetLeveler() Leveler {
	return leveler
}

func (ls *levelSetter) SetLevel(name string, level zapcore.Level) {
	_ = ls.setLevel(name, level)
}

func (ls *levelSetter) GetLevel(name string) zapcore.Level {
	ls.mu.RLock()
	defer ls.mu.RUnlock()

	if l, ok := ls.levels[name]; ok {
		return l.Level()
	}

	return zap.InfoLevel
}

func (ls *levelSetter) Names() []string {
	ls.mu.RLock()
	defer ls.mu.RUnlock()

	names := make([]string, 0, len(ls.levels))
	for name := range ls.levels {
		names = append(names, name)
	}
	return names
}

func (ls *levelSetter) setLevel(name string, level zapcore.Level) zap.AtomicLevel {
	ls.mu.Lock()
	defer ls.mu.Unlock()

	if _, ok := ls.levels[name]; !ok {
		ls.levels[name] = zap.NewAtomicLevelAt(level)
	}

	ls.levels[name].SetLevel(level)

	return ls.levels[name]
}

// New builds a named sugared logger whose level can later be adjusted
// through the Leveler.
func New(name string) *zap.SugaredLogger {
	c := cfg
	c.Level = leveler.setLevel(name, zap.InfoLevel)
	return zap.Must(c.Build(zap.AddStacktrace(zapcore.PanicLevel))).Named(name).Sugar()
}
