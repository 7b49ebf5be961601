package config

import (
	"fmt"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// LoggerConfig describes one logging sink (console or file).
type LoggerConfig struct {
	Level       string `yaml:"level" validate:"required,oneof=none debug normal"`
	Destination string `yaml:"destination,omitempty" validate:"omitempty,filepath"`
	Mode        string `yaml:"mode,omitempty" validate:"omitempty,oneof=append overwrite"`
}

// LoggingConfig is the top-level logging section of ProcessorConfig.
type LoggingConfig struct {
	FileLogger    LoggerConfig `yaml:"file"`
	ConsoleLogger LoggerConfig `yaml:"console"`
}

// Prepare builds the *zap.Logger used across the css and config packages.
// Console output always goes through a plain capital-level console encoder;
// this module has no CLI surface, so there is no terminal-color detection
// to wire up the way the teacher's binary does.
func (conf *LoggingConfig) Prepare() (*zap.Logger, error) {
	ec := zap.NewDevelopmentEncoderConfig()
	ec.EncodeCaller = nil
	ec.EncodeLevel = zapcore.CapitalLevelEncoder
	consoleEncoder := zapcore.NewConsoleEncoder(ec)

	var consoleCore zapcore.Core
	switch conf.ConsoleLogger.Level {
	case "normal":
		consoleCore = zapcore.NewCore(consoleEncoder, zapcore.Lock(os.Stdout),
			zap.LevelEnablerFunc(func(lvl zapcore.Level) bool { return lvl >= zapcore.InfoLevel }))
	case "debug":
		consoleCore = zapcore.NewCore(consoleEncoder, zapcore.Lock(os.Stdout),
			zap.LevelEnablerFunc(func(lvl zapcore.Level) bool { return lvl >= zapcore.DebugLevel }))
	default:
		consoleCore = zapcore.NewNopCore()
	}

	var fileCore zapcore.Core
	switch conf.FileLogger.Level {
	case "debug", "normal":
		flags := os.O_CREATE | os.O_WRONLY
		if conf.FileLogger.Mode == "append" {
			flags |= os.O_APPEND
		} else {
			flags |= os.O_TRUNC
		}
		f, err := os.OpenFile(conf.FileLogger.Destination, flags, 0644)
		if err != nil {
			return nil, fmt.Errorf("unable to open log destination %q: %w", conf.FileLogger.Destination, err)
		}
		level := zap.InfoLevel
		if conf.FileLogger.Level == "debug" {
			level = zap.DebugLevel
		}
		fileCore = zapcore.NewCore(zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig()),
			zapcore.Lock(f), zap.NewAtomicLevelAt(level))
	default:
		fileCore = zapcore.NewNopCore()
	}

	return zap.New(zapcore.NewTee(consoleCore, fileCore), zap.AddCaller()).Named("cssproc"), nil
}
