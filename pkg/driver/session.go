// Package driver wires the pipeline together: manifests, compiled-program
// caching and sessions that run several sources in one global environment.
package driver

import (
	"fmt"
	"io"
	"os"

	"lox/interpreter-go/pkg/diag"
	"lox/interpreter-go/pkg/interpreter"
)

// Config tunes a Session.
type Config struct {
	Stdout       io.Writer
	Stderr       io.Writer
	Color        diag.ColorMode
	MaxCallDepth int
	CacheSize    int
}

// Session owns one interpreter. Every source it runs shares the global
// environment, so later sources see earlier declarations.
type Session struct {
	interp   *interpreter.Interpreter
	cache    *ProgramCache
	reporter *diag.Reporter
}

func NewSession(cfg Config) (*Session, error) {
	if cfg.Stdout == nil {
		cfg.Stdout = os.Stdout
	}
	if cfg.Stderr == nil {
		cfg.Stderr = os.Stderr
	}
	if cfg.Color == "" {
		cfg.Color = diag.ColorAuto
	}
	cache, err := NewProgramCache(cfg.CacheSize)
	if err != nil {
		return nil, err
	}
	return &Session{
		interp: interpreter.New(
			interpreter.WithOutput(cfg.Stdout),
			interpreter.WithMaxCallDepth(cfg.MaxCallDepth),
		),
		cache:    cache,
		reporter: diag.NewReporter(cfg.Stderr, cfg.Color),
	}, nil
}

func (s *Session) Reporter() *diag.Reporter { return s.reporter }

func (s *Session) Cache() *ProgramCache { return s.cache }

func (s *Session) Interpreter() *interpreter.Interpreter { return s.interp }

// Run compiles and executes src. Lox diagnostics are reported before the
// error is returned; name only labels the returned error.
func (s *Session) Run(name, src string) error {
	program, err := s.cache.Compile(src)
	if err != nil {
		s.report(err)
		return fmt.Errorf("%s: %w", name, err)
	}
	if err := s.interp.Interpret(program.Statements, program.Locals); err != nil {
		s.report(err)
		return fmt.Errorf("%s: %w", name, err)
	}
	return nil
}

// report prints Lox diagnostics only. Other failures, such as a broken
// output writer, are left to the caller.
func (s *Session) report(err error) {
	if _, known := diag.CategoryOf(err); known {
		s.reporter.Report(err)
	}
}

// RunFile reads and runs one source file.
func (s *Session) RunFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	return s.Run(path, string(data))
}

// RunManifest runs the manifest's preload files and then its main file,
// stopping at the first failure.
func (s *Session) RunManifest(m *Manifest) error {
	for _, path := range m.Sources() {
		if err := s.RunFile(path); err != nil {
			return err
		}
	}
	return nil
}

// NewManifestSession builds a session configured by the manifest options.
// Explicit values in cfg win over the manifest.
func NewManifestSession(m *Manifest, cfg Config) (*Session, error) {
	if cfg.MaxCallDepth == 0 {
		cfg.MaxCallDepth = m.Options.MaxCallDepth
	}
	if cfg.Color == "" {
		cfg.Color = m.Options.Color
	}
	return NewSession(cfg)
}
