// Package state defines shared program state.
package state

import (
	"context"
	"time"

	"go.uber.org/zap"
	"golang.org/x/text/encoding"
	"golang.org/x/text/language"

	"mdimport/config"
)

type envKey struct{}

// LocalEnv keeps everything program needs in a single place.
type LocalEnv struct {
	Cfg *config.Config
	Rpt *config.Report
	Log *zap.Logger

	// used by convert subcommand
	NoDirs    bool
	Overwrite bool
	// CodePage is used for sources which are neither marked nor valid UTF-8,
	// nil means detect.
	CodePage encoding.Encoding
	// MappingPath overrides mapping file from configuration.
	MappingPath      string
	DefaultStyle     []byte
	DefaultStyleName string

	start         time.Time
	restoreStdLog func()
}

func EnvFromContext(ctx context.Context) *LocalEnv {
	if env, ok := ctx.Value(envKey{}).(*LocalEnv); ok {
		return env
	}
	// this should never happen
	panic("localenv not found in context")
}

func ContextWithEnv(ctx context.Context) context.Context {
	return context.WithValue(ctx, envKey{}, newLocalEnv())
}

func (e *LocalEnv) Uptime() time.Duration {
	return time.Since(e.start)
}

// Language returns locale used to guess style mapping, English when
// configuration does not have a usable one.
func (e *LocalEnv) Language() language.Tag {
	if e.Cfg == nil || e.Cfg.Document.Locale == "" {
		return language.English
	}
	tag, err := language.Parse(e.Cfg.Document.Locale)
	if err != nil {
		return language.English
	}
	return tag
}

// MappingFile returns explicitly requested mapping file, command line wins
// over configuration.
func (e *LocalEnv) MappingFile() string {
	if e.MappingPath != "" {
		return e.MappingPath
	}
	if e.Cfg == nil {
		return ""
	}
	return e.Cfg.Document.Mapping.Path
}

func (e *LocalEnv) RedirectStdLog() {
	if e.Log == nil {
		return
	}
	e.restoreStdLog = zap.RedirectStdLog(e.Log)
}

func (e *LocalEnv) RestoreStdLog() {
	if e.Log != nil {
		_ = e.Log.Sync()
	}
	if e.restoreStdLog != nil {
		e.restoreStdLog()
	}
}
