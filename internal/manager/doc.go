// Package manager detects which JavaScript package manager is available and
// runs its add-as-dev-dependency command for a batch of packages. The set of
// supported tools is fixed; the first one declared in Supported that is found
// on PATH is the default.
package manager
