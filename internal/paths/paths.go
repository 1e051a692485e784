package paths

import (
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
)

// AppName is used for XDG directory naming.
const AppName = "ucm"

// SystemConfDir is the config directory on router-class systems.
const SystemConfDir = "/etc/config"

// DefaultDirPerm is the default permission for newly created directories.
const DefaultDirPerm = 0o755

// EnsureDir creates the directory and any necessary parents with the
// specified permissions. If perm is 0, DefaultDirPerm is used.
// This function is idempotent; it returns nil if the directory already exists.
func EnsureDir(path string, perm os.FileMode) error {
	if perm == 0 {
		perm = DefaultDirPerm
	}
	return os.MkdirAll(path, perm)
}

// ConfDir returns the directory holding committed config files.
// On systems with a /etc/config layout that directory is used;
// elsewhere (development machines) the XDG data home is used so the
// tool works without root.
func ConfDir() string {
	if info, err := os.Stat(SystemConfDir); err == nil && info.IsDir() {
		return SystemConfDir
	}
	return filepath.Join(xdg.DataHome, AppName, "config")
}

// SaveDir returns the directory holding staged (uncommitted) config
// files. Staged state is transient, so it lives under the XDG state
// home rather than next to the committed files.
func SaveDir() string {
	return filepath.Join(xdg.StateHome, AppName, "staged")
}

// ConfigHome returns the directory for the tool's own configuration
// file (not the managed config packages).
func ConfigHome() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}
