package profile

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	securejoin "github.com/cyphar/filepath-securejoin"

	"github.com/microtonal-studio/patchctl/internal/logging"
	"github.com/microtonal-studio/patchctl/internal/resolver"
	"github.com/microtonal-studio/patchctl/internal/system"
	"github.com/microtonal-studio/patchctl/internal/transport"
)

const (
	profilesFile = "profiles.toml"
	profilesDir  = "profiles.d"
)

// fileConfig is the on-disk shape of a profile file.
type fileConfig struct {
	Profiles map[string]fileProfile `toml:"profiles"`
}

type fileProfile struct {
	Description string     `toml:"description"`
	Links       []fileLink `toml:"links"`
}

type fileLink struct {
	Transport     string `toml:"transport"`
	Label         string `toml:"label"`
	Source        string `toml:"source"`
	SourceContext string `toml:"source_context"`
	SourcePort    int    `toml:"source_port"`
	Dest          string `toml:"dest"`
	DestContext   string `toml:"dest_context"`
	DestPort      int    `toml:"dest_port"`
}

func (l fileLink) spec() resolver.Spec {
	label := l.Label
	if label == "" {
		label = l.Source + " -> " + l.Dest
	}
	return resolver.Spec{
		Transport: transport.Kind(l.Transport),
		Label:     label,
		Source:    resolver.Match{Pattern: l.Source, Context: l.SourceContext, Port: l.SourcePort},
		Dest:      resolver.Match{Pattern: l.Dest, Context: l.DestContext, Port: l.DestPort},
	}
}

// Store loads profiles from a config directory, layered over the built-in
// table. Precedence, lowest to highest: built-ins, profiles.toml,
// profiles.d/<name>.toml.
type Store struct {
	fs        system.FileSystem
	ConfigDir string
}

// NewStore creates a profile store over the given config directory.
func NewStore(fs system.FileSystem, configDir string) *Store {
	return &Store{fs: fs, ConfigDir: configDir}
}

// DefaultConfigDir returns the per-user config directory for patchctl.
func DefaultConfigDir() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "patchctl")
}

// Get returns one profile by name, validated.
func (s *Store) Get(name string) (*Profile, error) {
	all, err := s.load()
	if err != nil {
		return nil, err
	}

	p, ok := all[name]
	if !ok {
		return nil, fmt.Errorf("no such profile %q", name)
	}
	if err := Validate(&p); err != nil {
		return nil, err
	}
	return &p, nil
}

// List returns all known profiles sorted by name. Invalid user profiles
// are included so they show up in listings; Get rejects them.
func (s *Store) List() ([]Profile, error) {
	all, err := s.load()
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(all))
	for name := range all {
		names = append(names, name)
	}
	sort.Strings(names)

	profiles := make([]Profile, 0, len(names))
	for _, name := range names {
		profiles = append(profiles, all[name])
	}
	return profiles, nil
}

func (s *Store) load() (map[string]Profile, error) {
	all := Builtin()

	if s.ConfigDir == "" {
		return all, nil
	}

	path := filepath.Join(s.ConfigDir, profilesFile)
	if s.fs.Exists(path) {
		if err := s.mergeFile(all, path); err != nil {
			return nil, err
		}
	}

	dir := filepath.Join(s.ConfigDir, profilesDir)
	if s.fs.Exists(dir) {
		if err := s.mergeDir(all, dir); err != nil {
			return nil, err
		}
	}

	return all, nil
}

func (s *Store) mergeFile(all map[string]Profile, path string) error {
	data, err := s.fs.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}

	var cfg fileConfig
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return fmt.Errorf("parsing %s: %w", path, err)
	}

	for name, fp := range cfg.Profiles {
		all[name] = fp.profile(name)
		logging.Debug("loaded profile", "name", name, "path", path)
	}
	return nil
}

// mergeDir loads profiles.d/<name>.toml files, one profile per file, named
// after the file. Names pass through SecureJoin so a crafted entry can
// never resolve outside the directory.
func (s *Store) mergeDir(all map[string]Profile, dir string) error {
	entries, err := s.fs.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("reading %s: %w", dir, err)
	}

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".toml") {
			continue
		}
		name := strings.TrimSuffix(entry.Name(), ".toml")

		path, err := securejoin.SecureJoin(dir, entry.Name())
		if err != nil {
			return fmt.Errorf("resolving %s: %w", entry.Name(), err)
		}

		data, err := s.fs.ReadFile(path)
		if err != nil {
			return fmt.Errorf("reading %s: %w", path, err)
		}

		var fp fileProfile
		if err := toml.Unmarshal(data, &fp); err != nil {
			return fmt.Errorf("parsing %s: %w", path, err)
		}

		all[name] = fp.profile(name)
		logging.Debug("loaded profile", "name", name, "path", path)
	}
	return nil
}

func (fp fileProfile) profile(name string) Profile {
	p := Profile{Name: name, Description: fp.Description}
	for _, link := range fp.Links {
		p.Links = append(p.Links, link.spec())
	}
	return p
}

// LoadFile parses a standalone profile file (the --file flag): either the
// layered profiles.toml shape or a single profile, in which case it is
// named after the file.
func LoadFile(fs system.FileSystem, path string) (map[string]Profile, error) {
	data, err := fs.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	var cfg fileConfig
	if err := toml.Unmarshal(data, &cfg); err == nil && len(cfg.Profiles) > 0 {
		out := make(map[string]Profile, len(cfg.Profiles))
		for name, fp := range cfg.Profiles {
			out[name] = fp.profile(name)
		}
		return out, nil
	}

	var fp fileProfile
	if err := toml.Unmarshal(data, &fp); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	name := strings.TrimSuffix(filepath.Base(path), ".toml")
	return map[string]Profile{name: fp.profile(name)}, nil
}
