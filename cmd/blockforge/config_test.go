package main

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

// ----------------------------------------------------------------------------
// resolveConfigDir
// ----------------------------------------------------------------------------

func TestResolveConfigDir_EnvWins(t *testing.T) {
	t.Setenv(envConfigDir, "/tmp/forge")
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")

	got, err := resolveConfigDir()
	if err != nil {
		t.Fatal(err)
	}
	if got != "/tmp/forge" {
		t.Fatalf("got %q", got)
	}
}

func TestResolveConfigDir_XDG(t *testing.T) {
	t.Setenv(envConfigDir, "")
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")

	got, err := resolveConfigDir()
	if err != nil {
		t.Fatal(err)
	}
	if want := filepath.Join("/tmp/xdg", appName); got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestResolveConfigDir_Home(t *testing.T) {
	t.Setenv(envConfigDir, "")
	t.Setenv("XDG_CONFIG_HOME", "")
	t.Setenv("HOME", "/tmp/home")

	got, err := resolveConfigDir()
	if err != nil {
		t.Fatal(err)
	}
	if want := filepath.Join("/tmp/home", ".config", appName); got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

// ----------------------------------------------------------------------------
// file resolution
// ----------------------------------------------------------------------------

func TestSplitColon(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"", nil},
		{"a", []string{"a"}},
		{"a:b", []string{"a", "b"}},
		{"a::b:", []string{"a", "b"}},
	}
	for _, tt := range tests {
		got := splitColon(tt.in)
		if len(got) == 0 && len(tt.want) == 0 {
			continue
		}
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("splitColon(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestGlobDefs(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "b.yml"), "[]")
	writeFile(t, filepath.Join(dir, "a.json"), "[]")
	writeFile(t, filepath.Join(dir, "c.YAML"), "[]")
	writeFile(t, filepath.Join(dir, "notes.txt"), "")
	if err := os.Mkdir(filepath.Join(dir, "sub.yml"), 0o755); err != nil {
		t.Fatal(err)
	}

	got, err := globDefs(dir)
	if err != nil {
		t.Fatal(err)
	}
	want := []string{
		filepath.Join(dir, "a.json"),
		filepath.Join(dir, "b.yml"),
		filepath.Join(dir, "c.YAML"),
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestGlobDefs_MissingDir(t *testing.T) {
	got, err := globDefs(filepath.Join(t.TempDir(), "nope"))
	if err != nil || got != nil {
		t.Fatalf("got %v, %v", got, err)
	}
}

func TestResolveBlockFiles_Order(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "blocks", "base.yml"), "[]")
	t.Setenv(envBlocks, "/env/one.yml:/env/two.json")

	got, err := resolveBlockFiles(dir, []string{"/flag.yml"})
	if err != nil {
		t.Fatal(err)
	}
	want := []string{
		filepath.Join(dir, "blocks", "base.yml"),
		"/env/one.yml",
		"/env/two.json",
		"/flag.yml",
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestResolveToolboxFile(t *testing.T) {
	if got := resolveToolboxFile("/cfg", "/other.json"); got != "/other.json" {
		t.Errorf("flag: got %q", got)
	}
	if got := resolveToolboxFile("/cfg", ""); got != filepath.Join("/cfg", "toolbox.json") {
		t.Errorf("default: got %q", got)
	}
}

// ----------------------------------------------------------------------------
// readDefinitions / loadSources
// ----------------------------------------------------------------------------

const colorYAML = `
- id: color
  name: color
  category: Agents
  color: "#5ba55b"
  kind: Setter
  config:
    options:
      - {label: red, value: RED}
`

const speedJSON = `[
  {"id": "speed", "name": "speed", "category": "Motion", "color": "#000",
   "kind": "GlobalValue", "config": {"globalName": "speed"}}
]`

func TestReadDefinitions_SingleFilePassesThrough(t *testing.T) {
	path := filepath.Join(t.TempDir(), "blocks.yml")
	writeFile(t, path, "blocks:\n  - id: x\n")

	v, err := readDefinitions([]string{path})
	if err != nil {
		t.Fatal(err)
	}
	items, ok := v.([]any)
	if !ok || len(items) != 1 {
		t.Fatalf("got %#v", v)
	}
}

func TestReadDefinitions_Concatenates(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.yml")
	b := filepath.Join(dir, "b.json")
	writeFile(t, a, colorYAML)
	writeFile(t, b, speedJSON)

	v, err := readDefinitions([]string{a, b})
	if err != nil {
		t.Fatal(err)
	}
	items := v.([]any)
	if len(items) != 2 {
		t.Fatalf("got %d items", len(items))
	}
	if id := items[1].(map[string]any)["id"]; id != "speed" {
		t.Fatalf("second item id = %v", id)
	}
}

func TestReadDefinitions_MissingFileNamed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.yml")
	_, err := readDefinitions([]string{path})
	if err == nil || !strings.Contains(err.Error(), path) {
		t.Fatalf("expected error naming %s, got %v", path, err)
	}
}

func TestReadDefinitions_NonArrayInMultipleFiles(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.yml")
	b := filepath.Join(dir, "b.json")
	writeFile(t, a, colorYAML)
	writeFile(t, b, `{"id": "x"}`)

	_, err := readDefinitions([]string{a, b})
	if err == nil || !strings.Contains(err.Error(), "must be an array") {
		t.Fatalf("got %v", err)
	}
}

func TestLoadSources(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.yml")
	b := filepath.Join(dir, "b.json")
	writeFile(t, a, colorYAML)
	writeFile(t, b, speedJSON)

	p, err := loadSources([]string{a, b})
	if err != nil {
		t.Fatal(err)
	}
	if len(p.schemas) != 2 {
		t.Fatalf("got %d schemas", len(p.schemas))
	}
	if !p.editor.HasShape("color") || !p.editor.HasShape("speed") {
		t.Fatal("blocks not registered with the editor")
	}
	if _, ok := p.registry.Get("speed"); !ok {
		t.Fatal("speed missing from registry")
	}
}

func TestLoadSources_NoFiles(t *testing.T) {
	_, err := loadSources(nil)
	if err == nil || !strings.Contains(err.Error(), "no block definition files") {
		t.Fatalf("got %v", err)
	}
}

func TestLoadSources_InvalidDefinitions(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yml")
	writeFile(t, path, "- id: x\n  kind: Teleporter\n")

	if _, err := loadSources([]string{path}); err == nil {
		t.Fatal("expected error")
	}
}

func TestLoadSources_MappingWithoutBlocksList(t *testing.T) {
	dir := t.TempDir()
	single := filepath.Join(dir, "single.yml")
	writeFile(t, single, "id: color\nname: color\ncategory: Agents\ncolor: \"#fff\"\nkind: Setter\nconfig: {}\n")
	other := filepath.Join(dir, "other.json")
	writeFile(t, other, speedJSON)

	if _, err := loadSources([]string{single}); err == nil || !strings.Contains(err.Error(), "must be an array") {
		t.Fatalf("single file: got %v", err)
	}
	if _, err := loadSources([]string{other, single}); err == nil || !strings.Contains(err.Error(), single) {
		t.Fatalf("multiple files: got %v", err)
	}
}
