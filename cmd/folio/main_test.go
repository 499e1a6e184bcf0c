package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pelletier/go-toml/v2"

	"folio/internal/config"
	"folio/internal/testsupport"
)

type cliTestEnv struct {
	cfg        *config.Config
	configPath string
}

func setupCLITestEnv(t *testing.T, opts ...testsupport.ConfigOption) *cliTestEnv {
	t.Helper()

	cfg := testsupport.NewConfig(t, opts...)
	configPath := filepath.Join(t.TempDir(), "config.toml")
	writeTestConfig(t, configPath, cfg)

	return &cliTestEnv{cfg: cfg, configPath: configPath}
}

func writeTestConfig(t *testing.T, path string, cfg *config.Config) {
	t.Helper()
	data, err := toml.Marshal(cfg)
	if err != nil {
		t.Fatalf("marshal config: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
}

func runCLI(t *testing.T, args []string, configPath string) (string, error) {
	t.Helper()

	cmd := newRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	if configPath != "" {
		args = append([]string{"--config", configPath}, args...)
	}
	cmd.SetArgs(args)

	err := cmd.Execute()
	return out.String(), err
}

func requireContains(t *testing.T, output, want string) {
	t.Helper()
	if !strings.Contains(output, want) {
		t.Fatalf("output missing %q:\n%s", want, output)
	}
}

func TestConfigInitAndValidate(t *testing.T) {
	env := setupCLITestEnv(t)

	out, err := runCLI(t, []string{"config", "validate"}, env.configPath)
	if err != nil {
		t.Fatalf("config validate: %v", err)
	}
	requireContains(t, out, "Configuration valid")

	target := filepath.Join(t.TempDir(), "config.toml")
	out, err = runCLI(t, []string{"config", "init", "--path", target}, env.configPath)
	if err != nil {
		t.Fatalf("config init: %v", err)
	}
	requireContains(t, out, "Wrote sample configuration")

	if _, err := os.Stat(target); err != nil {
		t.Fatalf("expected config file at %s: %v", target, err)
	}
}

func TestProcessCommandSweep(t *testing.T) {
	env := setupCLITestEnv(t)
	testsupport.WriteBookFolder(t, filepath.Join(env.cfg.Paths.BooksDir, "42-shakespeare"), "William Shakespeare", 2)

	out, err := runCLI(t, []string{"process"}, env.configPath)
	if err != nil {
		t.Fatalf("process: %v", err)
	}
	requireContains(t, out, "42-shakespeare")
	requireContains(t, out, "1 processed")

	// Second sweep is an idempotent no-op.
	out, err = runCLI(t, []string{"process"}, env.configPath)
	if err != nil {
		t.Fatalf("second process: %v", err)
	}
	requireContains(t, out, "skipped")
}

func TestProcessCommandSingleFolder(t *testing.T) {
	env := setupCLITestEnv(t)
	testsupport.WriteBookFolder(t, filepath.Join(env.cfg.Paths.BooksDir, "5A1"), "Pietro Aretino", 1)

	out, err := runCLI(t, []string{"process", "5A1"}, env.configPath)
	if err != nil {
		t.Fatalf("process 5A1: %v", err)
	}
	requireContains(t, out, "5A1")
	requireContains(t, out, "processed")
}

func TestListCommand(t *testing.T) {
	env := setupCLITestEnv(t)
	testsupport.WriteBookFolder(t, filepath.Join(env.cfg.Paths.BooksDir, "42-shakespeare"), "William Shakespeare", 1)

	out, err := runCLI(t, []string{"list"}, env.configPath)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	requireContains(t, out, "pending")

	if _, err := runCLI(t, []string{"process"}, env.configPath); err != nil {
		t.Fatalf("process: %v", err)
	}

	out, err = runCLI(t, []string{"list"}, env.configPath)
	if err != nil {
		t.Fatalf("list after process: %v", err)
	}
	requireContains(t, out, "processed")
}

func TestCatalogImportAndShow(t *testing.T) {
	env := setupCLITestEnv(t, testsupport.WithCatalog())

	csvPath := filepath.Join(t.TempDir(), "descriptions.csv")
	csvData := "book_id,author,title\n5A1,Pietro Aretino,Le carte parlanti\n"
	if err := os.WriteFile(csvPath, []byte(csvData), 0o644); err != nil {
		t.Fatal(err)
	}

	out, err := runCLI(t, []string{"catalog", "import", csvPath}, env.configPath)
	if err != nil {
		t.Fatalf("catalog import: %v", err)
	}
	requireContains(t, out, "Imported 1 descriptions")

	out, err = runCLI(t, []string{"catalog", "show", "5A01"}, env.configPath)
	if err != nil {
		t.Fatalf("catalog show: %v", err)
	}
	requireContains(t, out, "Le carte parlanti")

	out, err = runCLI(t, []string{"catalog", "list"}, env.configPath)
	if err != nil {
		t.Fatalf("catalog list: %v", err)
	}
	requireContains(t, out, "5A1")
}
