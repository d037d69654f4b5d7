package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/danmuck/mediagate/internal/manifest"
	"github.com/danmuck/mediagate/internal/testutil/testlog"
)

func TestLoadGateConfigAppliesDefaults(t *testing.T) {
	testlog.Start(t)
	path := filepath.Join(t.TempDir(), "gate.toml")
	if err := os.WriteFile(path, []byte(`declarations = "d.toml"`+"\n"), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	cfg, err := LoadGateConfig(path)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.Name != DefaultName || cfg.Addr != DefaultAddr || cfg.Workers != DefaultWorkers {
		t.Fatalf("defaults not applied: %+v", cfg)
	}
	if cfg.Declarations != "d.toml" {
		t.Fatalf("unexpected declarations path: %q", cfg.Declarations)
	}
}

func TestLoadGateConfigErrors(t *testing.T) {
	testlog.Start(t)
	dir := t.TempDir()
	cases := map[string]string{
		"missing declarations": `name = "x"`,
		"negative workers":     "declarations = \"d.toml\"\nworkers = -1\n",
		"empty origin":         "declarations = \"d.toml\"\ncors_origins = [\"\"]\n",
		"bad toml":             `name = `,
	}
	for name, body := range cases {
		path := filepath.Join(dir, strings.ReplaceAll(name, " ", "_")+".toml")
		if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
		if _, err := LoadGateConfig(path); err == nil {
			t.Fatalf("%s: expected error", name)
		}
	}
	if _, err := LoadGateConfig(filepath.Join(dir, "missing.toml")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}

func TestTemplatesLoad(t *testing.T) {
	testlog.Start(t)
	dir := t.TempDir()

	gatePath := filepath.Join(dir, "gate.toml")
	if err := WriteTemplate(gatePath, "gate", false); err != nil {
		t.Fatalf("write gate template: %v", err)
	}
	cfg, err := LoadGateConfig(gatePath)
	if err != nil {
		t.Fatalf("gate template invalid: %v", err)
	}
	if len(cfg.CorsOrigins) != 1 || cfg.Content != "content.toml" {
		t.Fatalf("unexpected gate template values: %+v", cfg)
	}

	declPath := filepath.Join(dir, "declarations.toml")
	if err := WriteTemplate(declPath, "declarations", false); err != nil {
		t.Fatalf("write declarations template: %v", err)
	}
	decl, err := manifest.LoadDeclarations(declPath)
	if err != nil {
		t.Fatalf("declarations template invalid: %v", err)
	}
	if len(decl.Tests()) != 2 {
		t.Fatalf("unexpected template tests: %d", len(decl.Tests()))
	}

	contentPath := filepath.Join(dir, "content.toml")
	if err := WriteTemplate(contentPath, "content", false); err != nil {
		t.Fatalf("write content template: %v", err)
	}
	if _, err := manifest.LoadContent(contentPath); err != nil {
		t.Fatalf("content template invalid: %v", err)
	}
}

func TestWriteTemplateRefusesOverwrite(t *testing.T) {
	testlog.Start(t)
	path := filepath.Join(t.TempDir(), "gate.toml")
	if err := WriteTemplate(path, "gate", false); err != nil {
		t.Fatalf("first write: %v", err)
	}
	if err := WriteTemplate(path, "gate", false); err == nil {
		t.Fatalf("expected overwrite refusal")
	}
	if err := WriteTemplate(path, "gate", true); err != nil {
		t.Fatalf("forced overwrite: %v", err)
	}
	if _, err := Template("unknown"); err == nil {
		t.Fatalf("expected unknown kind error")
	}
}
