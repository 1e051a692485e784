package commands

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func setImportInput(t *testing.T, path string) {
	t.Helper()
	prev := importInput
	importInput = path
	t.Cleanup(func() { importInput = prev })
}

func TestRunImport_FromStdin(t *testing.T) {
	setupDirs(t)
	setImportInput(t, "")

	cmd, _ := newTestCommand(t)
	cmd.SetIn(strings.NewReader("config interface lan\noption ifname eth0\n"))
	if err := runImport(cmd, []string{"network"}); err != nil {
		t.Fatalf("runImport() error = %v", err)
	}

	// The import lands staged, not committed.
	if _, err := os.Stat(filepath.Join(saveDirFlag, "network")); err != nil {
		t.Errorf("staged file not written: %v", err)
	}
	if _, err := os.Stat(filepath.Join(confDirFlag, "network")); !os.IsNotExist(err) {
		t.Errorf("import wrote to confdir, stat err = %v", err)
	}

	readCmd, buf := newTestCommand(t)
	if err := runGet(readCmd, []string{"network.lan.ifname"}); err != nil {
		t.Fatal(err)
	}
	if got := buf.String(); got != "eth0\n" {
		t.Errorf("imported ifname = %q, want %q", got, "eth0\n")
	}
}

func TestRunImport_FromFile(t *testing.T) {
	setupDirs(t)
	src := filepath.Join(t.TempDir(), "network.uci")
	if err := os.WriteFile(src, []byte("config interface lan\noption proto dhcp\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	setImportInput(t, src)

	cmd, _ := newTestCommand(t)
	if err := runImport(cmd, []string{"network"}); err != nil {
		t.Fatalf("runImport() error = %v", err)
	}

	readCmd, buf := newTestCommand(t)
	if err := runGet(readCmd, []string{"network.lan.proto"}); err != nil {
		t.Fatal(err)
	}
	if got := buf.String(); got != "dhcp\n" {
		t.Errorf("proto = %q, want %q", got, "dhcp\n")
	}
}

func TestRunImport_EmbeddedPackageNameWins(t *testing.T) {
	setupDirs(t)
	setImportInput(t, "")

	cmd, _ := newTestCommand(t)
	cmd.SetIn(strings.NewReader("package 'dhcp'\nconfig dnsmasq main\n"))
	if err := runImport(cmd, []string{"network"}); err != nil {
		t.Fatalf("runImport() error = %v", err)
	}

	// The staged file is named after the embedded package statement.
	if _, err := os.Stat(filepath.Join(saveDirFlag, "dhcp")); err != nil {
		t.Errorf("staged file for embedded name not written: %v", err)
	}
}

func TestRunImport_RejectsMalformedInput(t *testing.T) {
	setupDirs(t)
	setImportInput(t, "")

	cmd, _ := newTestCommand(t)
	cmd.SetIn(strings.NewReader("config interface lan\noption dns\n"))
	if err := runImport(cmd, []string{"network"}); err == nil {
		t.Fatal("runImport() with malformed input succeeded, want error")
	}

	if _, err := os.Stat(filepath.Join(saveDirFlag, "network")); !os.IsNotExist(err) {
		t.Errorf("malformed import staged a file, stat err = %v", err)
	}
}

func TestRunExport_RoundTripsImport(t *testing.T) {
	setupDirs(t)
	writeCommitted(t, "network", "config interface lan\noption ifname eth0\n")

	cmd, buf := newTestCommand(t)
	if err := runExport(cmd, []string{"network"}); err != nil {
		t.Fatalf("runExport() error = %v", err)
	}

	want := "package 'network'\n\n" +
		"config interface 'lan'\n" +
		"\toption ifname 'eth0'\n\n"
	if got := buf.String(); got != want {
		t.Errorf("export = %q, want %q", got, want)
	}
}

func TestRunExport_ToFile(t *testing.T) {
	setupDirs(t)
	writeCommitted(t, "network", "config interface lan\n")

	out := filepath.Join(t.TempDir(), "backup.uci")
	prev := exportOutput
	exportOutput = out
	t.Cleanup(func() { exportOutput = prev })

	cmd, buf := newTestCommand(t)
	if err := runExport(cmd, nil); err != nil {
		t.Fatalf("runExport() error = %v", err)
	}
	if buf.Len() != 0 {
		t.Errorf("export wrote to stdout despite -o:\n%s", buf.String())
	}
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("reading output file: %v", err)
	}
	if !strings.Contains(string(data), "package 'network'") {
		t.Errorf("output file missing package:\n%s", data)
	}
}
