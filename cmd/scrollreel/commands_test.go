package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ivlev/scrollreel/internal/config"
	"github.com/ivlev/scrollreel/internal/director"
)

func TestInspectTable(t *testing.T) {
	cfg := config.Default()
	out := inspectTable(&cfg, 3)

	for _, want := range []string{"Progress", "Frame", "Block 1", "0.500", "143"} {
		if !strings.Contains(out, want) {
			t.Errorf("table missing %q:\n%s", want, out)
		}
	}
}

func TestRenderFlagsPreset(t *testing.T) {
	cmd := newRenderCommand(newCommandContext(new(string), new(string)))
	if err := cmd.Flags().Parse([]string{"--preset", "9:16", "--fps", "25", "--width", "721"}); err != nil {
		t.Fatal(err)
	}

	cfg := config.Default()
	flags := renderFlags{preset: "9:16", fps: 25, width: 721}
	if err := flags.apply(cmd, &cfg); err != nil {
		t.Fatalf("apply: %v", err)
	}
	if cfg.Output.Width != 722 || cfg.Output.Height != 1280 {
		t.Errorf("expected 722x1280, got %dx%d", cfg.Output.Width, cfg.Output.Height)
	}
	if cfg.Output.FPS != 25 {
		t.Errorf("expected fps 25, got %d", cfg.Output.FPS)
	}

	bad := renderFlags{preset: "1:1"}
	if err := bad.apply(cmd, &cfg); err == nil {
		t.Error("expected error for unknown preset")
	}
}

func TestDefaultTourVisitsEveryBlock(t *testing.T) {
	cfg := config.Default()
	script, err := defaultTour(&cfg)
	if err != nil {
		t.Fatal(err)
	}
	scrolls := 0
	for _, st := range script.Steps {
		if st.Action == director.ActionScrollTo {
			scrolls++
		}
	}
	// one per block plus the final scroll to the end
	if scrolls != len(cfg.Overlays)+1 {
		t.Errorf("expected %d scroll steps, got %d", len(cfg.Overlays)+1, scrolls)
	}
}

func TestScriptCommandWritesFile(t *testing.T) {
	target := filepath.Join(t.TempDir(), "tour", "script.yaml")

	root := newRootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs([]string{"script", "--output", target, "--log-level", "error"})
	if err := root.Execute(); err != nil {
		t.Fatalf("execute: %v", err)
	}
	if _, err := os.Stat(target); err != nil {
		t.Fatalf("script not written: %v", err)
	}
	if _, err := director.ReadScript(target); err != nil {
		t.Errorf("written script does not load: %v", err)
	}
	if !strings.Contains(out.String(), target) {
		t.Errorf("expected output to name %s, got %q", target, out.String())
	}
}
