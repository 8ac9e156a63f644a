// Package version reports build information for `scribe version`.
//
// Values are injected at link time:
//
//	go build -ldflags "-X github.com/kbukum/scribe/version.Version=1.2.0 \
//	    -X github.com/kbukum/scribe/version.Commit=$(git rev-parse --short HEAD)"
//
// When they are not, the module's embedded VCS stamp is used.
package version
