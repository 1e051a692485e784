// Package paths resolves the directories used by ucm.
//
// Three distinct locations are involved:
//
//   - the confdir holding committed config packages (/etc/config on
//     router-class systems, XDG data home elsewhere)
//   - the savedir holding staged, uncommitted package copies
//   - the tool's own config directory under the XDG config home
//
// The package wraps github.com/adrg/xdg for cross-platform XDG Base
// Directory Specification compliance.
package paths
