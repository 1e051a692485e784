package commands

import (
	"testing"
)

func TestRunGet_OptionValue(t *testing.T) {
	setupDirs(t)
	writeCommitted(t, "network", "config interface lan\noption ifname eth0\n")

	cmd, buf := newTestCommand(t)
	if err := runGet(cmd, []string{"network.lan.ifname"}); err != nil {
		t.Fatalf("runGet() error = %v", err)
	}
	if got := buf.String(); got != "eth0\n" {
		t.Errorf("output = %q, want %q", got, "eth0\n")
	}
}

func TestRunGet_SectionType(t *testing.T) {
	setupDirs(t)
	writeCommitted(t, "network", "config interface lan\noption ifname eth0\n")

	cmd, buf := newTestCommand(t)
	if err := runGet(cmd, []string{"network.lan"}); err != nil {
		t.Fatalf("runGet() error = %v", err)
	}
	if got := buf.String(); got != "interface\n" {
		t.Errorf("output = %q, want %q", got, "interface\n")
	}
}

func TestRunGet_SeesStagedValue(t *testing.T) {
	setupDirs(t)
	writeCommitted(t, "network", "config interface lan\noption ifname eth0\n")
	writeStaged(t, "network", "config interface lan\noption ifname br-lan\n")

	cmd, buf := newTestCommand(t)
	if err := runGet(cmd, []string{"network.lan.ifname"}); err != nil {
		t.Fatalf("runGet() error = %v", err)
	}
	if got := buf.String(); got != "br-lan\n" {
		t.Errorf("output = %q, want staged value %q", got, "br-lan\n")
	}
}

func TestRunGet_Errors(t *testing.T) {
	setupDirs(t)
	writeCommitted(t, "network", "config interface lan\noption ifname eth0\n")

	tests := []struct {
		name string
		path string
	}{
		{"package only", "network"},
		{"missing package", "absent.lan"},
		{"missing section", "network.wan"},
		{"missing option", "network.lan.mtu"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd, _ := newTestCommand(t)
			if err := runGet(cmd, []string{tt.path}); err == nil {
				t.Errorf("runGet(%q) succeeded, want error", tt.path)
			}
		})
	}
}
