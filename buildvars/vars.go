// Copyright (c) 2025 ToeiRei
// Stockmaster - point-of-sale inventory back end
// This source code is licensed under the MIT license found in the LICENSE file.

// Package buildvars contains variables injected at build time, e.g.
//
//	go build -ldflags "-X github.com/toeirei/stockmaster/buildvars.Version=v1.2.0"
//
// They are empty for local or development builds.
package buildvars

var (
	// Version is the release version.
	Version string
	// Commit is the short commit SHA.
	Commit string
	// BuildDate is the build time in RFC3339.
	BuildDate string
)

// VersionOrDefault returns Version if set, otherwise def.
func VersionOrDefault(def string) string {
	if len(Version) > 0 {
		return Version
	}
	return def
}

// CommitOrDefault returns Commit if set, otherwise def.
func CommitOrDefault(def string) string {
	if len(Commit) > 0 {
		return Commit
	}
	return def
}
