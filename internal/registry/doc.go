// Package registry checks npm-compatible registries for the existence of
// packages. It does not download or interpret package documents.
package registry
