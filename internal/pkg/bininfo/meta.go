// Package bininfo holds version control information injected at build time
// through go's -ldflags. The variable names are part of the build contract;
// renaming them breaks the injection.
package bininfo

var (
	// Version is the SemVer version of the binary.
	// Git commit is appended, if available, separated by a plus sign [+].
	Version = "v0.0.0"

	// BuildTime is the time at which the application was built.
	BuildTime = "1970-01-01T00:00:00Z"
)
