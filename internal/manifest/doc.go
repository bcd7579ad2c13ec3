// Package manifest reads package.json files: the project manifest, whose
// dependency fields are kept in declaration order, and the installed metadata
// of individual dependencies under node_modules. Project manifests are checked
// against an embedded JSON Schema before decoding.
package manifest
