// Package cli defines the Cobra command tree for the typefill CLI. The root
// command runs the type sync for a project; doctor, config and version each
// live in their own file. Commands delegate to internal packages for business
// logic and only handle flag parsing, I/O formatting, and user interaction.
package cli
