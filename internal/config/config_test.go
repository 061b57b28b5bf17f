package config

import (
	"errors"
	"io"
	"log/slog"
	"reflect"
	"testing"
)

// discardLogger returns a logger that drops every record so deprecation
// notices do not clutter test output.
func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// TestDefaultOptions documents the per-mode defaults. A change to these
// values changes the behavior of every invocation, so it must be intentional.
func TestDefaultOptions(t *testing.T) {
	t.Parallel()

	t.Run("exec defaults", func(t *testing.T) {
		t.Parallel()
		got := DefaultOptions(ModeExec)
		want := Options{
			"reporter":        []string{"cli"},
			"show_progress":   false,
			"color":           true,
			"create_lockfile": true,
			"backend_cache":   true,
		}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("expected %v, got %v", want, got)
		}
	})

	t.Run("shell defaults", func(t *testing.T) {
		t.Parallel()
		got := DefaultOptions(ModeShell)
		want := Options{"reporter": []string{"cli"}}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("expected %v, got %v", want, got)
		}
	})

	t.Run("unknown mode has no defaults", func(t *testing.T) {
		t.Parallel()
		if got := DefaultOptions("detect"); len(got) != 0 {
			t.Errorf("expected no defaults, got %v", got)
		}
	})

	t.Run("defaults are fresh copies", func(t *testing.T) {
		t.Parallel()
		a := DefaultOptions(ModeExec)
		a["color"] = false
		b := DefaultOptions(ModeExec)
		if b["color"] != true {
			t.Error("mutating one defaults table must not affect another")
		}
	})
}

func TestResolve(t *testing.T) {
	t.Parallel()

	t.Run("defaults only gives a cli reporter on stdout", func(t *testing.T) {
		t.Parallel()
		cfg, err := Resolve(ModeExec, nil, nil, WithLogger(discardLogger()))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		want := map[string]ReporterConfig{"cli": {Stdout: true}}
		if !reflect.DeepEqual(cfg.Reporters, want) {
			t.Errorf("expected %v, got %v", want, cfg.Reporters)
		}
		if !cfg.Color {
			t.Error("expected color to default to true in exec mode")
		}
		if cfg.LogLevel != "info" {
			t.Errorf("expected log level info, got %q", cfg.LogLevel)
		}
	})

	t.Run("invocation overrides document per key", func(t *testing.T) {
		t.Parallel()
		doc := Options{"color": false, "target": "ssh://box"}
		inv := Options{"color": true}
		cfg, err := Resolve(ModeExec, doc, inv, WithLogger(discardLogger()))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !cfg.Color {
			t.Error("expected invocation color to win")
		}
		if cfg.Target != "ssh://box" {
			t.Errorf("expected document target to survive, got %q", cfg.Target)
		}
	})

	t.Run("document reporter list replaces default", func(t *testing.T) {
		t.Parallel()
		doc := Options{"reporter": []any{"json:/tmp/out.json"}}
		cfg, err := Resolve(ModeExec, doc, nil, WithLogger(discardLogger()))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		want := map[string]ReporterConfig{"json": {File: "/tmp/out.json"}}
		if !reflect.DeepEqual(cfg.Reporters, want) {
			t.Errorf("expected %v, got %v", want, cfg.Reporters)
		}
	})

	t.Run("legacy format in invocation drops default reporter list", func(t *testing.T) {
		t.Parallel()
		inv := Options{"format": "json"}
		cfg, err := Resolve(ModeExec, nil, inv, WithLogger(discardLogger()))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		want := map[string]ReporterConfig{"json": {Stdout: true}}
		if !reflect.DeepEqual(cfg.Reporters, want) {
			t.Errorf("expected %v, got %v", want, cfg.Reporters)
		}
		if cfg.Options.Has("format") {
			t.Error("expected format to be consumed")
		}
	})

	t.Run("legacy format in document drops document reporter list", func(t *testing.T) {
		t.Parallel()
		doc := Options{"format": "json-min", "output": "/tmp/min.json", "reporter": []any{"junit"}}
		cfg, err := Resolve(ModeExec, doc, nil, WithLogger(discardLogger()))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		want := map[string]ReporterConfig{"json-min": {File: "/tmp/min.json"}}
		if !reflect.DeepEqual(cfg.Reporters, want) {
			t.Errorf("expected %v, got %v", want, cfg.Reporters)
		}
	})

	t.Run("invocation reporter wins over legacy format", func(t *testing.T) {
		t.Parallel()
		doc := Options{"format": "json"}
		inv := Options{"reporter": []string{"cli", "junit:/tmp/j.xml"}}
		cfg, err := Resolve(ModeExec, doc, inv, WithLogger(discardLogger()))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		want := map[string]ReporterConfig{
			"cli":   {Stdout: true},
			"junit": {File: "/tmp/j.xml"},
		}
		if !reflect.DeepEqual(cfg.Reporters, want) {
			t.Errorf("expected %v, got %v", want, cfg.Reporters)
		}
	})

	t.Run("flag style keys are normalized", func(t *testing.T) {
		t.Parallel()
		inv := Options{"log-level": "DEBUG", "log-location": "/tmp/x.log"}
		cfg, err := Resolve(ModeExec, nil, inv, WithLogger(discardLogger()))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cfg.LogLevel != "debug" {
			t.Errorf("expected debug, got %q", cfg.LogLevel)
		}
		if cfg.LogLocation != "/tmp/x.log" {
			t.Errorf("expected log location, got %q", cfg.LogLocation)
		}
	})

	t.Run("unknown log level falls back to info", func(t *testing.T) {
		t.Parallel()
		cfg, err := Resolve(ModeExec, nil, Options{"log_level": "verbose"}, WithLogger(discardLogger()))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cfg.LogLevel != "info" {
			t.Errorf("expected info, got %q", cfg.LogLevel)
		}
	})

	t.Run("password without value is an error", func(t *testing.T) {
		t.Parallel()
		_, err := Resolve(ModeExec, nil, Options{"password": MissingValue}, WithLogger(discardLogger()))
		if !errors.Is(err, ErrMissingOptionValue) {
			t.Fatalf("expected ErrMissingOptionValue, got %v", err)
		}
	})

	t.Run("sudo password without value names the flag", func(t *testing.T) {
		t.Parallel()
		_, err := Resolve(ModeExec, nil, Options{"sudo-password": MissingValue}, WithLogger(discardLogger()))
		if !errors.Is(err, ErrMissingOptionValue) {
			t.Fatalf("expected ErrMissingOptionValue, got %v", err)
		}
		want := "missing option value: please provide a value for --sudo-password. For example: --sudo-password=hello"
		if err.Error() != want {
			t.Errorf("expected %q, got %q", want, err.Error())
		}
	})

	t.Run("password with value is accepted", func(t *testing.T) {
		t.Parallel()
		if _, err := Resolve(ModeExec, nil, Options{"password": "hello"}, WithLogger(discardLogger())); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("validation errors are returned", func(t *testing.T) {
		t.Parallel()
		_, err := Resolve(ModeExec, nil, Options{"reporter": []string{"cli", "json"}}, WithLogger(discardLogger()))
		if !errors.Is(err, ErrMultipleStdoutReporters) {
			t.Fatalf("expected ErrMultipleStdoutReporters, got %v", err)
		}
	})
}

func TestConfigSuppressLogOutput(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		reporters map[string]ReporterConfig
		want      bool
	}{
		{
			name:      "cli on stdout",
			reporters: map[string]ReporterConfig{"cli": {Stdout: true}},
			want:      false,
		},
		{
			name:      "json on stdout",
			reporters: map[string]ReporterConfig{"json": {Stdout: true}},
			want:      true,
		},
		{
			name:      "json-min to file",
			reporters: map[string]ReporterConfig{"json-min": {File: "/tmp/x"}, "cli": {Stdout: true}},
			want:      false,
		},
		{
			name:      "junit on stdout",
			reporters: map[string]ReporterConfig{"junit": {Stdout: true}},
			want:      true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg := &Config{Reporters: tt.reporters}
			if got := cfg.SuppressLogOutput(); got != tt.want {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestConfigStdoutReporter(t *testing.T) {
	t.Parallel()

	cfg := &Config{Reporters: map[string]ReporterConfig{
		"json": {File: "/tmp/a.json"},
		"cli":  {Stdout: true},
	}}
	name, ok := cfg.StdoutReporter()
	if !ok || name != "cli" {
		t.Errorf("expected cli, got %q (%v)", name, ok)
	}

	cfg = &Config{Reporters: map[string]ReporterConfig{"json": {File: "/tmp/a.json"}}}
	if _, ok := cfg.StdoutReporter(); ok {
		t.Error("expected no stdout reporter")
	}
}
