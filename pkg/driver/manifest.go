package driver

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"lox/interpreter-go/pkg/diag"
)

// Manifest represents the parsed contents of lox.yml.
type Manifest struct {
	Path    string
	Name    string
	Main    string
	Preload []string
	Options Options
}

// Options tune how a manifest's program is run.
type Options struct {
	MaxCallDepth int
	Color        diag.ColorMode
}

type manifestFile struct {
	Name    string   `yaml:"name"`
	Main    string   `yaml:"main"`
	Preload []string `yaml:"preload"`
	Options *struct {
		MaxCallDepth *int   `yaml:"max_call_depth"`
		Color        string `yaml:"color"`
	} `yaml:"options"`
}

// ValidationError aggregates manifest validation failures.
type ValidationError struct {
	Issues []string
}

func (e *ValidationError) Error() string {
	if len(e.Issues) == 0 {
		return "manifest: invalid configuration"
	}
	var b strings.Builder
	b.WriteString("manifest validation failed:")
	for _, issue := range e.Issues {
		b.WriteString("\n- ")
		b.WriteString(issue)
	}
	return b.String()
}

// LoadManifest parses lox.yml from disk, returning a validated manifest.
func LoadManifest(path string) (*Manifest, error) {
	if path == "" {
		return nil, fmt.Errorf("manifest: empty path")
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("manifest: resolve %s: %w", path, err)
	}
	file, err := os.Open(absPath)
	if err != nil {
		return nil, fmt.Errorf("manifest: open %s: %w", absPath, err)
	}
	defer file.Close()
	return decodeManifest(file, absPath)
}

func decodeManifest(r io.Reader, absPath string) (*Manifest, error) {
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)

	var raw manifestFile
	if err := decoder.Decode(&raw); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("manifest: %s is empty", absPath)
		}
		return nil, fmt.Errorf("manifest: parse %s: %w", absPath, err)
	}
	return raw.toManifest(absPath)
}

func (raw manifestFile) toManifest(absPath string) (*Manifest, error) {
	m := &Manifest{
		Path:    absPath,
		Name:    strings.TrimSpace(raw.Name),
		Main:    strings.TrimSpace(raw.Main),
		Preload: raw.Preload,
		Options: Options{Color: diag.ColorAuto},
	}
	var errs ValidationError
	if m.Name == "" {
		errs.Issues = append(errs.Issues, "name must be provided")
	}
	if m.Main == "" {
		errs.Issues = append(errs.Issues, "main must name the entry source file")
	}
	for i, p := range m.Preload {
		if strings.TrimSpace(p) == "" {
			errs.Issues = append(errs.Issues, fmt.Sprintf("preload[%d] must be a non-empty path", i))
		}
	}
	if opts := raw.Options; opts != nil {
		if opts.MaxCallDepth != nil {
			if *opts.MaxCallDepth <= 0 {
				errs.Issues = append(errs.Issues, fmt.Sprintf("options.max_call_depth must be positive, got %d", *opts.MaxCallDepth))
			}
			m.Options.MaxCallDepth = *opts.MaxCallDepth
		}
		mode, err := diag.ParseColorMode(opts.Color)
		if err != nil {
			errs.Issues = append(errs.Issues, "options.color: "+err.Error())
		}
		m.Options.Color = mode
	}
	if len(errs.Issues) > 0 {
		return nil, &errs
	}
	return m, nil
}

// Dir is the directory that relative source paths are resolved against.
func (m *Manifest) Dir() string {
	return filepath.Dir(m.Path)
}

// Sources lists the preload files followed by the main file, as absolute
// paths in execution order.
func (m *Manifest) Sources() []string {
	out := make([]string, 0, len(m.Preload)+1)
	for _, p := range m.Preload {
		out = append(out, m.resolve(p))
	}
	return append(out, m.resolve(m.Main))
}

func (m *Manifest) resolve(p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(m.Dir(), p)
}

// ManifestFileName is the manifest looked up by FindManifest.
const ManifestFileName = "lox.yml"

// ErrManifestNotFound is returned by FindManifest when no directory from
// start to the filesystem root holds a manifest.
var ErrManifestNotFound = errors.New(ManifestFileName + " not found")

// FindManifest walks from start up to the root and returns the first
// lox.yml it finds.
func FindManifest(start string) (string, error) {
	dir, err := filepath.Abs(start)
	if err != nil {
		return "", fmt.Errorf("resolve start directory %q: %w", start, err)
	}
	if info, statErr := os.Stat(dir); statErr == nil && !info.IsDir() {
		dir = filepath.Dir(dir)
	}
	origin := dir
	for {
		candidate := filepath.Join(dir, ManifestFileName)
		info, err := os.Stat(candidate)
		if err == nil && !info.IsDir() {
			return candidate, nil
		}
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return "", err
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("no %s found from %s upwards: %w", ManifestFileName, origin, ErrManifestNotFound)
		}
		dir = parent
	}
}
