package config

import (
	"errors"
	"strings"
	"testing"
)

func TestValidateReporters(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		reporters map[string]ReporterConfig
		wantErr   error
		wantText  string
	}{
		{
			name:      "empty map is valid",
			reporters: nil,
		},
		{
			name:      "single stdout reporter",
			reporters: map[string]ReporterConfig{"cli": {Stdout: true}},
		},
		{
			name: "one stdout reporter plus files",
			reporters: map[string]ReporterConfig{
				"cli":      {Stdout: true},
				"json":     {File: "/tmp/a.json"},
				"json-min": {File: "/tmp/b.json"},
			},
		},
		{
			name:      "unknown reporter",
			reporters: map[string]ReporterConfig{"nonsense": {Stdout: true}},
			wantErr:   ErrInvalidReporter,
			wantText:  "'nonsense' is not a valid reporter type",
		},
		{
			name:      "automate without settings",
			reporters: map[string]ReporterConfig{"automate": {}},
			wantErr:   ErrMissingReporterOption,
			wantText:  "automate token",
		},
		{
			name: "automate without url",
			reporters: map[string]ReporterConfig{
				"automate": {Settings: Options{"token": "abc"}},
			},
			wantErr:  ErrMissingReporterOption,
			wantText: "automate url",
		},
		{
			name: "automate with null url",
			reporters: map[string]ReporterConfig{
				"automate": {Settings: Options{"token": "abc", "url": nil}},
			},
			wantErr:  ErrMissingReporterOption,
			wantText: "automate url",
		},
		{
			name: "automate complete",
			reporters: map[string]ReporterConfig{
				"automate": {Settings: Options{"token": "abc", "url": "https://a.example"}},
			},
		},
		{
			name: "two stdout reporters",
			reporters: map[string]ReporterConfig{
				"cli":  {Stdout: true},
				"json": {Stdout: true},
			},
			wantErr: ErrMultipleStdoutReporters,
		},
		{
			name: "unknown reporter reported before stdout conflict",
			reporters: map[string]ReporterConfig{
				"cli":   {Stdout: true},
				"bogus": {Stdout: true},
			},
			wantErr: ErrInvalidReporter,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := ValidateReporters(tt.reporters)
			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}
			if tt.wantText != "" && !strings.Contains(err.Error(), tt.wantText) {
				t.Errorf("expected error to contain %q, got %q", tt.wantText, err.Error())
			}
		})
	}
}

func TestIsKnownReporter(t *testing.T) {
	t.Parallel()

	for _, name := range []string{"automate", "cli", "documentation", "html", "json", "json-min", "json-rspec", "junit", "progress"} {
		if !IsKnownReporter(name) {
			t.Errorf("expected %q to be known", name)
		}
	}
	if IsKnownReporter("xml") {
		t.Error("expected xml to be unknown")
	}
}
