package main

import (
	"testing"
	"time"
)

func TestParseFlags(t *testing.T) {
	cfg, err := parseFlags([]string{
		"-title", "Pick one",
		"-multiselect",
		"-timeout", "30s",
		"-log", "trace.log",
		"-trace",
		"alpha", "beta",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Title != "Pick one" || !cfg.Multiselect || cfg.Timeout != 30*time.Second {
		t.Fatalf("unexpected config %+v", cfg)
	}
	if cfg.LogFile != "trace.log" || !cfg.Trace {
		t.Fatalf("unexpected logging config %+v", cfg)
	}
	if len(cfg.Items) != 2 || cfg.Items[0] != "alpha" || cfg.Items[1] != "beta" {
		t.Fatalf("unexpected items %v", cfg.Items)
	}
}

func TestReadItemsPrefersArguments(t *testing.T) {
	items, err := readItems(cliConfig{Items: []string{"a", "b"}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("unexpected items %v", items)
	}
}

func TestCollectTTYDetailsIncludesStandardDescriptors(t *testing.T) {
	info := collectTTYDetails()
	if len(info.Probes) != 3 {
		t.Fatalf("expected 3 probe entries, got %d", len(info.Probes))
	}
	expected := []string{"stdin", "stdout", "stderr"}
	for i, name := range expected {
		if info.Probes[i].Name != name {
			t.Fatalf("expected probe %d name %q, got %q", i, name, info.Probes[i].Name)
		}
	}
}

func TestStartupTracePayloadIncludesFlags(t *testing.T) {
	cfg := cliConfig{
		Title:   "Pick",
		Inline:  true,
		Timeout: time.Minute,
		LogFile: "trace.log",
		Trace:   true,
	}
	payload := startupTracePayload(cfg)
	if payload["title"] != "Pick" {
		t.Fatalf("expected title in payload, got %v", payload["title"])
	}
	if payload["inline"] != true {
		t.Fatalf("expected inline flag, got %v", payload["inline"])
	}
	if payload["timeout"] != "1m0s" {
		t.Fatalf("expected timeout string, got %v", payload["timeout"])
	}
	if payload["logFile"] != "trace.log" || payload["trace"] != true {
		t.Fatalf("expected logging flags in payload, got %v", payload)
	}
	if _, ok := payload["tty"].(ttyDetails); !ok {
		t.Fatalf("expected tty details in payload")
	}
}
