// Package uci implements an in-memory hierarchical configuration store
// modeled after the OpenWrt unified configuration interface.
//
// Configuration data is organized as packages containing ordered
// sections, which in turn contain ordered name/value options. A
// [Context] owns all loaded packages and is the entry point for every
// operation:
//
//	ctx := uci.New(uci.WithStore(uci.NewDirStore("/etc/config")))
//	pkg, err := ctx.Load("network")
//
// # Text format
//
// Packages parse from and serialize to a line-oriented text format:
//
//	package 'network'
//
//	config interface 'lan'
//		option ifname 'eth0'
//		option proto 'static'
//
// Values may be single- or double-quoted; the enclosing quote character
// and the backslash are escapable inside the string. Lines starting
// with '#' are comments. A config line without a name starts an
// anonymous section, which receives a generated identifier unique for
// the lifetime of its package.
//
// # History
//
// Every mutation performed through the accessor methods ([Section.Set],
// [Section.Delete], [Package.AddSection], [Package.DeleteSection]) is
// recorded in a per-package journal before it is applied.
// [Package.Revert] undoes recorded mutations in LIFO order;
// [Package.Commit] discards the journal and accepts the current tree as
// the new baseline.
//
// # Concurrency
//
// A Context and everything reachable from it belong to a single logical
// owner. The package performs no internal locking; callers that share a
// Context across goroutines must serialize access themselves.
package uci
