package commands

import (
	"bytes"
	"strings"
	"testing"
)

func TestNewVersionCommand(t *testing.T) {
	tests := []struct {
		name      string
		version   string
		buildDate string
		gitCommit string
		wantOut   []string
		notWant   []string
	}{
		{
			name:    "default version",
			version: "0.1.0",
			wantOut: []string{"inklist v0.1.0", "editing engine"},
		},
		{
			name:      "unknown build info is omitted",
			version:   "1.2.3",
			buildDate: "unknown",
			gitCommit: "unknown",
			wantOut:   []string{"inklist v1.2.3"},
			notWant:   []string{"Built:", "Commit:"},
		},
		{
			name:      "build info is printed when set",
			version:   "dev",
			buildDate: "2025-11-02",
			gitCommit: "abc1234",
			wantOut:   []string{"inklist vdev", "Built:  2025-11-02", "Commit: abc1234"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := NewVersionCommand(tt.version, tt.buildDate, tt.gitCommit)
			buf := new(bytes.Buffer)
			cmd.SetOut(buf)
			cmd.SetErr(buf)

			if err := cmd.Execute(); err != nil {
				t.Fatalf("Execute() error = %v", err)
			}

			output := buf.String()
			for _, want := range tt.wantOut {
				if !strings.Contains(output, want) {
					t.Errorf("output should contain %q, got: %s", want, output)
				}
			}
			for _, unwanted := range tt.notWant {
				if strings.Contains(output, unwanted) {
					t.Errorf("output should not contain %q, got: %s", unwanted, output)
				}
			}
		})
	}
}

func TestVersionCommandMetadata(t *testing.T) {
	cmd := NewVersionCommand("test", "", "")

	if cmd.Use != "version" {
		t.Errorf("Use = %q, want %q", cmd.Use, "version")
	}

	if cmd.Short == "" {
		t.Error("Short should not be empty")
	}

	if cmd.Long == "" {
		t.Error("Long should not be empty")
	}
}
