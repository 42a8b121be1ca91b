// Package version reports build information for the prodquery binary.
//
//	go build -ldflags "-X github.com/kbukum/prodquery/version.Version=1.2.0"
package version
