// Package infra contains technical adapters such as the SQLite rewrite
// store, the URL generator and metrics exporters. These packages should
// depend only on the interfaces defined in the core packages.
package infra
