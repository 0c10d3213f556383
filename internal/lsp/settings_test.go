package lsp

import (
	"encoding/json"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func writeWorkspaceConfig(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
}

func TestLoadSettingsFromConfigFile(t *testing.T) {
	root := t.TempDir()
	writeWorkspaceConfig(t, root, defaultConfigFile, `
include_directories = ["include", "/abs/include"]
source_directories = ["rtl"]

[defines]
WIDTH = "8"
SYNTHESIS = ""
`)

	got := loadSettings(nil, root)
	want := Settings{
		IncludeDirectories: []string{"include", "/abs/include"},
		Defines:            map[string]string{"WIDTH": "8", "SYNTHESIS": ""},
		SourceDirectories:  []string{"rtl"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("settings = %+v, want %+v", got, want)
	}
}

func TestLoadSettingsInitializationOptionsWin(t *testing.T) {
	root := t.TempDir()
	writeWorkspaceConfig(t, root, defaultConfigFile, `include_directories = ["from_file"]`)

	raw := json.RawMessage(`{"include_directories":["from_client"]}`)
	got := loadSettings(raw, root)
	if len(got.IncludeDirectories) != 1 || got.IncludeDirectories[0] != "from_client" {
		t.Errorf("include dirs = %v, want [from_client]", got.IncludeDirectories)
	}
}

func TestLoadSettingsConfigFilePathOverride(t *testing.T) {
	root := t.TempDir()
	writeWorkspaceConfig(t, root, "custom.toml", `source_directories = ["src"]`)

	raw := json.RawMessage(`{"config_file_path":"custom.toml"}`)
	got := loadSettings(raw, root)
	if len(got.SourceDirectories) != 1 || got.SourceDirectories[0] != "src" {
		t.Errorf("source dirs = %v, want [src]", got.SourceDirectories)
	}
}

func TestLoadSettingsMissingFile(t *testing.T) {
	got := loadSettings(nil, t.TempDir())
	if !got.empty() {
		t.Errorf("settings = %+v, want empty", got)
	}
}

func TestSettingsDirResolution(t *testing.T) {
	s := Settings{
		IncludeDirectories: []string{"include", "/abs/include", ""},
		SourceDirectories:  []string{"rtl"},
	}
	inc := s.includeDirs("/work")
	want := []string{filepath.Join("/work", "include"), "/abs/include"}
	if !reflect.DeepEqual(inc, want) {
		t.Errorf("includeDirs = %v, want %v", inc, want)
	}
	src := s.sourceDirs("")
	if !reflect.DeepEqual(src, []string{"rtl"}) {
		t.Errorf("sourceDirs = %v, want [rtl]", src)
	}
}
