package buildinfo

// Version is injected at release build time, e.g.:
// -X github.com/jxsim-x/skillstack-learning-tracker/internal/pkg/buildinfo.Version=v0.2.0
var Version = "v0.1.0-dev"

// Commit optionally carries the git commit, injected the same way.
var Commit = "unknown"
