package driver

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"lox/interpreter-go/pkg/diag"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func newTestSession(t *testing.T) (*Session, *bytes.Buffer, *bytes.Buffer) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	s, err := NewSession(Config{Stdout: &stdout, Stderr: &stderr, Color: diag.ColorNever})
	require.NoError(t, err)
	return s, &stdout, &stderr
}

func TestLoadManifest(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "lox.yml", `
name: demo
main: main.lox
preload:
  - lib/util.lox
options:
  max_call_depth: 256
  color: never
`)
	m, err := LoadManifest(path)
	require.NoError(t, err)
	require.Equal(t, "demo", m.Name)
	require.Equal(t, 256, m.Options.MaxCallDepth)
	require.Equal(t, diag.ColorNever, m.Options.Color)
	require.Equal(t, []string{
		filepath.Join(dir, "lib", "util.lox"),
		filepath.Join(dir, "main.lox"),
	}, m.Sources())
}

func TestLoadManifestDefaults(t *testing.T) {
	dir := t.TempDir()
	m, err := LoadManifest(writeFile(t, dir, "lox.yml", "name: tiny\nmain: a.lox\n"))
	require.NoError(t, err)
	require.Equal(t, diag.ColorAuto, m.Options.Color)
	require.Zero(t, m.Options.MaxCallDepth)
	require.Equal(t, []string{filepath.Join(dir, "a.lox")}, m.Sources())
}

func TestLoadManifestValidation(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "lox.yml", `
preload: [""]
options:
  max_call_depth: 0
  color: rainbow
`)
	_, err := LoadManifest(path)
	var verr *ValidationError
	require.True(t, errors.As(err, &verr), "expected validation error, got %v", err)
	require.Equal(t, []string{
		"name must be provided",
		"main must name the entry source file",
		"preload[0] must be a non-empty path",
		"options.max_call_depth must be positive, got 0",
		`options.color: unknown color mode "rainbow" (want auto, always or never)`,
	}, verr.Issues)
	require.True(t, strings.HasPrefix(err.Error(), "manifest validation failed:\n- name must be provided"))
}

func TestLoadManifestRejectsUnknownFields(t *testing.T) {
	dir := t.TempDir()
	_, err := LoadManifest(writeFile(t, dir, "lox.yml", "name: x\nmain: a.lox\nversion: 2\n"))
	require.Error(t, err)
	require.Contains(t, err.Error(), "field version not found")
}

func TestLoadManifestEmptyFile(t *testing.T) {
	dir := t.TempDir()
	_, err := LoadManifest(writeFile(t, dir, "lox.yml", ""))
	require.Error(t, err)
	require.Contains(t, err.Error(), "is empty")
}

func TestProgramCacheReusesCompiledPrograms(t *testing.T) {
	cache, err := NewProgramCache(2)
	require.NoError(t, err)

	first, err := cache.Compile("print 1;")
	require.NoError(t, err)
	second, err := cache.Compile("print 1;")
	require.NoError(t, err)
	require.Same(t, first, second)

	_, err = cache.Compile("print ;")
	require.Error(t, err)
	hits, misses := cache.Stats()
	require.Equal(t, 1, hits)
	require.Equal(t, 2, misses)
	require.Equal(t, 1, cache.Len())

	for _, src := range []string{"print 2;", "print 3;"} {
		_, err := cache.Compile(src)
		require.NoError(t, err)
	}
	require.LessOrEqual(t, cache.Len(), 2)
}

func TestSessionSharesGlobalsAcrossRuns(t *testing.T) {
	s, stdout, stderr := newTestSession(t)
	require.NoError(t, s.Run("lib", "fun greet(name) { return \"hi \" + name; }"))
	require.NoError(t, s.Run("main", "print greet(\"Ann\");"))
	require.Equal(t, "hi Ann\n", stdout.String())
	require.Empty(t, stderr.String())
}

func TestSessionRerunsCachedProgram(t *testing.T) {
	s, stdout, _ := newTestSession(t)
	require.NoError(t, s.Run("init", "var n = 0;"))
	for i := 0; i < 3; i++ {
		require.NoError(t, s.Run("bump", "n = n + 1; print n;"))
	}
	require.Equal(t, "1\n2\n3\n", stdout.String())
	hits, _ := s.Cache().Stats()
	require.Equal(t, 2, hits)
}

func TestSessionReportsStaticErrorsWithoutRunning(t *testing.T) {
	s, stdout, stderr := newTestSession(t)
	err := s.Run("bad.lox", "print \"before\";\nreturn 1;")
	require.Error(t, err)
	require.Equal(t, diag.ExitDataErr, diag.ExitCode(err))
	require.Empty(t, stdout.String())
	require.Equal(t, "[line 2] Resolver error: Can't return from top-level code.\n", stderr.String())
	require.True(t, s.Reporter().HadError())
	require.False(t, s.Reporter().HadRuntimeError())
}

func TestSessionReportsRuntimeErrors(t *testing.T) {
	s, stdout, stderr := newTestSession(t)
	err := s.Run("bad.lox", "print 1;\nprint -\"x\";")
	require.Error(t, err)
	require.Equal(t, diag.ExitSoftware, diag.ExitCode(err))
	require.Equal(t, "1\n", stdout.String())
	require.Equal(t, "[line 2] Operand must be a number.\n", stderr.String())
	require.True(t, s.Reporter().HadRuntimeError())
}

func TestSessionReportsEveryParseError(t *testing.T) {
	s, _, stderr := newTestSession(t)
	err := s.Run("bad.lox", "var = 1;\nprint ;")
	require.Error(t, err)
	require.Equal(t, 2, s.Reporter().Count(diag.CategoryParse))
	require.Equal(t, "[line 1] Parse error at '=': Expect variable name.\n[line 2] Parse error at ';': Expect expression.\n", stderr.String())
}

func TestRunManifest(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "lib"), 0o755))
	writeFile(t, dir, "lib/shapes.lox", `
class Square {
  area() { return this.side * this.side; }
}
fun square(side) {
  var s = Square();
  s.side = side;
  return s;
}
`)
	writeFile(t, dir, "main.lox", "print square(4).area();\n")
	manifestPath := writeFile(t, dir, "lox.yml", "name: shapes\nmain: main.lox\npreload: [lib/shapes.lox]\noptions:\n  max_call_depth: 32\n")

	m, err := LoadManifest(manifestPath)
	require.NoError(t, err)
	var stdout bytes.Buffer
	s, err := NewManifestSession(m, Config{Stdout: &stdout, Stderr: &bytes.Buffer{}, Color: diag.ColorNever})
	require.NoError(t, err)
	require.NoError(t, s.RunManifest(m))
	require.Equal(t, "16\n", stdout.String())
}

func TestManifestCallDepthApplies(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "main.lox", "fun down(n) { if (n > 0) down(n - 1); }\ndown(50);\n")
	m, err := LoadManifest(writeFile(t, dir, "lox.yml", "name: deep\nmain: main.lox\noptions:\n  max_call_depth: 10\n"))
	require.NoError(t, err)
	var stderr bytes.Buffer
	s, err := NewManifestSession(m, Config{Stdout: &bytes.Buffer{}, Stderr: &stderr, Color: diag.ColorNever})
	require.NoError(t, err)
	err = s.RunManifest(m)
	require.Error(t, err)
	require.Equal(t, "[line 1] Stack overflow.\n", stderr.String())
}

func TestRunFileMissing(t *testing.T) {
	s, _, _ := newTestSession(t)
	err := s.RunFile(filepath.Join(t.TempDir(), "missing.lox"))
	require.Error(t, err)
	require.Equal(t, diag.ExitIOErr, diag.ExitCode(err))
}

func TestFindManifest(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, ManifestFileName, "name: test\nmain: main.lox\n")
	child := filepath.Join(root, "src", "app")
	require.NoError(t, os.MkdirAll(child, 0o755))

	found, err := FindManifest(child)
	require.NoError(t, err)
	require.Equal(t, filepath.Join(root, ManifestFileName), found)
}

func TestFindManifestMissing(t *testing.T) {
	_, err := FindManifest(t.TempDir())
	if err == nil {
		t.Skip("a lox.yml exists above the temp directory")
	}
	require.ErrorIs(t, err, ErrManifestNotFound)
}

var errClosedOutput = errors.New("output closed")

type closedWriter struct{}

func (closedWriter) Write([]byte) (int, error) { return 0, errClosedOutput }

func TestSessionLeavesWriteFailuresToCaller(t *testing.T) {
	var stderr bytes.Buffer
	s, err := NewSession(Config{Stdout: closedWriter{}, Stderr: &stderr, Color: diag.ColorNever})
	require.NoError(t, err)

	err = s.Run("main.lox", "print 1;")
	require.ErrorIs(t, err, errClosedOutput)
	require.Empty(t, stderr.String())
	require.False(t, s.Reporter().HadError())
	require.False(t, s.Reporter().HadRuntimeError())
	require.Equal(t, diag.ExitIOErr, diag.ExitCode(err))
}
