// ABOUTME: Tests for root CLI command and global flags
// ABOUTME: Verifies command structure, subcommands, and flag handling
package commands

import (
	"testing"
)

func TestNewRootCmd(t *testing.T) {
	cmd := NewRootCmd()

	if cmd.Use != "keepsake" {
		t.Errorf("Use = %q, want %q", cmd.Use, "keepsake")
	}
	if cmd.Short == "" {
		t.Error("Short description should not be empty")
	}
	if cmd.Long == "" {
		t.Error("Long description should not be empty")
	}
}

func TestRootCmd_GlobalFlags(t *testing.T) {
	cmd := NewRootCmd()

	tests := []struct {
		flagName  string
		shorthand string
		defValue  string
	}{
		{"db", "", ""},
		{"user", "", ""},
		{"verbose", "v", "false"},
		{"quiet", "q", "false"},
	}

	for _, tt := range tests {
		t.Run(tt.flagName, func(t *testing.T) {
			flag := cmd.PersistentFlags().Lookup(tt.flagName)
			if flag == nil {
				t.Fatalf("--%s flag not found", tt.flagName)
			}
			if tt.shorthand != "" && flag.Shorthand != tt.shorthand {
				t.Errorf("--%s shorthand = %q, want %q", tt.flagName, flag.Shorthand, tt.shorthand)
			}
			if flag.DefValue != tt.defValue {
				t.Errorf("--%s default = %q, want %q", tt.flagName, flag.DefValue, tt.defValue)
			}
		})
	}
}

func TestRootCmd_Subcommands(t *testing.T) {
	cmd := NewRootCmd()

	want := []string{"ask", "say", "learn", "correct", "search", "stats", "reset", "mcp", "version"}
	for _, name := range want {
		found := false
		for _, sub := range cmd.Commands() {
			if sub.Name() == name {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("subcommand %q not registered", name)
		}
	}
}
