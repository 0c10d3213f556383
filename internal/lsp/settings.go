package lsp

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// defaultConfigFile is looked up in the workspace root when the client
// sends no initialization options.
const defaultConfigFile = ".very.toml"

// Settings mirrors the server configuration surface: include directories
// for `include resolution, preprocessor defines, and source directories to
// index for workspace symbols. Relative paths resolve against the
// workspace root.
type Settings struct {
	IncludeDirectories []string          `json:"include_directories" toml:"include_directories"`
	Defines            map[string]string `json:"defines" toml:"defines"`
	SourceDirectories  []string          `json:"source_directories" toml:"source_directories"`
	ConfigFilePath     string            `json:"config_file_path,omitempty" toml:"config_file_path,omitempty"`
}

func (s Settings) empty() bool {
	return len(s.IncludeDirectories) == 0 && len(s.Defines) == 0 && len(s.SourceDirectories) == 0
}

// resolveDir anchors a settings path at the workspace root.
func resolveDir(root, dir string) string {
	if dir == "" {
		return ""
	}
	if filepath.IsAbs(dir) || root == "" {
		return dir
	}
	return filepath.Join(root, dir)
}

func (s Settings) includeDirs(root string) []string {
	dirs := make([]string, 0, len(s.IncludeDirectories))
	for _, d := range s.IncludeDirectories {
		if resolved := resolveDir(root, d); resolved != "" {
			dirs = append(dirs, resolved)
		}
	}
	return dirs
}

func (s Settings) sourceDirs(root string) []string {
	dirs := make([]string, 0, len(s.SourceDirectories))
	for _, d := range s.SourceDirectories {
		if resolved := resolveDir(root, d); resolved != "" {
			dirs = append(dirs, resolved)
		}
	}
	return dirs
}

// loadSettings prefers initialization options; when they carry nothing it
// falls back to the workspace config file.
func loadSettings(raw json.RawMessage, root string) Settings {
	var s Settings
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &s); err == nil && !s.empty() {
			return s
		}
	}
	if fromFile, ok := loadSettingsFile(root, s.ConfigFilePath); ok {
		return fromFile
	}
	return s
}

func loadSettingsFile(root, override string) (Settings, bool) {
	if root == "" {
		return Settings{}, false
	}
	name := override
	if name == "" {
		name = defaultConfigFile
	}
	path := filepath.Join(root, name)
	content, err := os.ReadFile(path) // #nosec G304 -- path is rooted at the workspace
	if err != nil {
		return Settings{}, false
	}
	var s Settings
	if err := toml.Unmarshal(content, &s); err != nil {
		return Settings{}, false
	}
	return s, true
}
