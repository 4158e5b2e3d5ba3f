// Package project locates and parses the logtag.toml project manifest.
package project

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"logtag/internal/facade"
)

// ManifestName is the file looked up from the working directory upward.
const ManifestName = "logtag.toml"

// Manifest is a parsed logtag.toml together with its location.
type Manifest struct {
	Path   string
	Root   string
	Config Config
}

// Config mirrors the manifest file layout. Every section is optional; the
// built-in Timber facade and current-directory outputs apply by default.
type Config struct {
	Facade FacadeConfig `toml:"facade"`
	Output OutputConfig `toml:"output"`
}

// FacadeConfig overrides the recognized logging facade.
type FacadeConfig struct {
	// Classpath models facade presence. Absent facade (false) turns the
	// whole rewriting pass into a silent bypass.
	Classpath     *bool    `toml:"classpath"`
	Owner         string   `toml:"owner"`
	LogMethods    []string `toml:"log_methods"`
	TagMethod     string   `toml:"tag_method"`
	TagDescriptor string   `toml:"tag_descriptor"`
}

// OutputConfig selects where rewritten units and generated sources go.
type OutputConfig struct {
	Dir    string `toml:"dir"`
	GenDir string `toml:"gen_dir"`
}

// Find walks from startDir upward looking for logtag.toml.
func Find(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, ManifestName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// Load discovers and parses the manifest. The second return value is false
// when no manifest exists, which is not an error: defaults apply.
func Load(startDir string) (*Manifest, bool, error) {
	path, ok, err := Find(startDir)
	if err != nil || !ok {
		return nil, ok, err
	}
	cfg, err := LoadConfig(path)
	if err != nil {
		return nil, true, err
	}
	return &Manifest{
		Path:   path,
		Root:   filepath.Dir(path),
		Config: cfg,
	}, true, nil
}

// LoadConfig parses a manifest file.
func LoadConfig(path string) (Config, error) {
	var cfg Config
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if meta.IsDefined("facade", "owner") && strings.TrimSpace(cfg.Facade.Owner) == "" {
		return Config{}, fmt.Errorf("%s: [facade].owner must not be blank", path)
	}
	if meta.IsDefined("facade", "log_methods") && len(cfg.Facade.LogMethods) == 0 {
		return Config{}, fmt.Errorf("%s: [facade].log_methods must not be empty", path)
	}
	return cfg, nil
}

// ResolveFacade materializes the facade described by the config, falling
// back to the built-in Timber model field by field.
func (c Config) ResolveFacade() facade.Facade {
	if c.Facade.Classpath != nil && !*c.Facade.Classpath {
		return facade.Absent()
	}
	def := facade.Default()
	owner := c.Facade.Owner
	if owner == "" {
		owner = def.Owner()
	}
	methods := c.Facade.LogMethods
	if len(methods) == 0 {
		methods = def.LogMethods()
	}
	tagMethod := c.Facade.TagMethod
	if tagMethod == "" {
		tagMethod = def.TagMethod()
	}
	tagDesc := c.Facade.TagDescriptor
	if tagDesc == "" {
		tagDesc = def.TagDescriptor()
	}
	return facade.New(owner, methods, tagMethod, tagDesc)
}
