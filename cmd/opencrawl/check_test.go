package main

import (
	"bytes"
	"testing"
)

// TestNewCheckCmd tests the check command creation.
func TestNewCheckCmd(t *testing.T) {
	t.Parallel()

	cmd := NewCheckCmd()

	t.Run("has correct use", func(t *testing.T) {
		t.Parallel()
		if cmd.Use != "check" {
			t.Errorf("expected use 'check', got %q", cmd.Use)
		}
	})

	t.Run("has model flag", func(t *testing.T) {
		t.Parallel()
		if cmd.Flags().Lookup("model") == nil {
			t.Error("expected model flag")
		}
	})
}

// TestRunCheckCmdWithoutAPIKey tests the error path without credentials.
func TestRunCheckCmdWithoutAPIKey(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")

	cmd := NewCheckCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{})

	if err := cmd.Execute(); err == nil {
		t.Error("expected error without API key")
	}
}
