package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/vango-dev/backtension/internal/config"
	"github.com/vango-dev/backtension/internal/errors"
)

func TestRunInit(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "site")

	in := inputFlags{html: "index.html", regions: "regions.yaml", root: "#app"}
	if err := runInit(dir, in, ":9191", false); err != nil {
		t.Fatalf("runInit: %v", err)
	}

	cfg, err := config.Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Document != "index.html" || cfg.Root != "#app" || cfg.Serve.Addr != ":9191" {
		t.Errorf("config = %+v", cfg)
	}

	err = runInit(dir, in, "", false)
	if err == nil || !strings.Contains(err.Error(), "E122") {
		t.Errorf("second init err = %v, want E122", err)
	}
	if err := runInit(dir, inputFlags{}, "", true); err != nil {
		t.Errorf("forced init: %v", err)
	}
}

func TestSettingsFlagsOverrideFile(t *testing.T) {
	dir := t.TempDir()
	cfg := config.New()
	cfg.Document = "page.html"
	cfg.Root = "#app"
	if err := cfg.SaveTo(filepath.Join(dir, config.ConfigFileName)); err != nil {
		t.Fatal(err)
	}
	chdir(t, dir)

	in := inputFlags{root: "main", logLevel: "debug"}
	got, err := in.settings()
	if err != nil {
		t.Fatalf("settings: %v", err)
	}
	if got.Root != "main" || got.LogLevel != "debug" {
		t.Errorf("flags not applied: %+v", got)
	}
	if got.DocumentPath() != filepath.Join(dir, "page.html") {
		t.Errorf("DocumentPath = %q", got.DocumentPath())
	}
}

func TestSettingsWithoutFile(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)

	in := inputFlags{html: "x.html"}
	got, err := in.settings()
	if err != nil {
		t.Fatalf("settings: %v", err)
	}
	if got.Document != "x.html" || got.Root != config.DefaultRoot {
		t.Errorf("settings = %+v", got)
	}

	in.logLevel = "loud"
	if _, err := in.settings(); err == nil {
		t.Error("invalid level accepted")
	}
}

func TestRunZones(t *testing.T) {
	dir := t.TempDir()
	html := filepath.Join(dir, "page.html")
	regions := filepath.Join(dir, "regions.yaml")
	if err := os.WriteFile(html, []byte(`<body><div class="hd"></div></body>`), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(regions, []byte("header: .hd\n"), 0644); err != nil {
		t.Fatal(err)
	}
	chdir(t, dir)

	if err := runZones(inputFlags{html: html, regions: regions, logLevel: "error"}, true, false); err != nil {
		t.Errorf("runZones: %v", err)
	}
	err := runZones(inputFlags{html: html, root: "#missing", logLevel: "error"}, false, true)
	if err == nil || !strings.Contains(err.Error(), "E145") {
		t.Errorf("err = %v, want E145", err)
	}
}

func TestPrintVersion(t *testing.T) {
	var buf bytes.Buffer
	printVersion(&buf, true)
	if got := buf.String(); got != version+"\n" {
		t.Errorf("short version = %q, want %q", got, version+"\n")
	}

	buf.Reset()
	printVersion(&buf, false)
	for _, want := range []string{"Version:", "Commit:", "Platform:"} {
		if !strings.Contains(buf.String(), want) {
			t.Errorf("version output missing %q:\n%s", want, buf.String())
		}
	}
}

func TestRunInitReportsUncreatableDir(t *testing.T) {
	file := filepath.Join(t.TempDir(), "file")
	if err := os.WriteFile(file, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	err := runInit(filepath.Join(file, "site"), inputFlags{}, "", false)
	if err == nil || !strings.Contains(err.Error(), "E148") {
		t.Errorf("runInit under a file err = %v, want E148", err)
	}
}

func TestErrorStyle(t *testing.T) {
	tests := []struct {
		name     string
		asJSON   bool
		terminal bool
		want     errors.Style
	}{
		{"json output", true, true, errors.StyleJSON},
		{"piped", false, false, errors.StyleCompact},
		{"terminal", false, true, errors.StylePretty},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := errorStyle(tt.asJSON, tt.terminal); got != tt.want {
				t.Errorf("errorStyle(%v, %v) = %v, want %v", tt.asJSON, tt.terminal, got, tt.want)
			}
		})
	}
}

func TestRunExplain(t *testing.T) {
	var buf bytes.Buffer
	if err := runExplain(&buf, ""); err != nil {
		t.Fatalf("runExplain: %v", err)
	}
	for _, want := range []string{"CODE", "E120", "E145", "E149"} {
		if !strings.Contains(buf.String(), want) {
			t.Errorf("listing missing %q:\n%s", want, buf.String())
		}
	}

	buf.Reset()
	if err := runExplain(&buf, "e145"); err != nil {
		t.Fatalf("runExplain(e145): %v", err)
	}
	if !strings.Contains(buf.String(), "E145 (cli): Root selector matched nothing") {
		t.Errorf("explain E145 = %q", buf.String())
	}

	err := runExplain(&buf, "E999")
	if err == nil || !strings.Contains(err.Error(), "E149") {
		t.Errorf("unknown code err = %v, want E149", err)
	}
}

// chdir changes the working directory for the duration of the test,
// mirroring testing.T.Chdir (Go 1.24+) for older toolchains.
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("chdir: %v", err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(prev); err != nil {
			t.Fatalf("restore wd: %v", err)
		}
	})
}
