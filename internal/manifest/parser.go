package manifest

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/mailru/easyjson/jlexer"
)

// Load reads, validates and decodes <dir>/package.json. A missing file
// yields an error wrapping ErrNotFound.
func Load(dir string) (*Package, error) {
	path := filepath.Join(dir, FileName)
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("%w in %s", ErrNotFound, dir)
	}
	if err != nil {
		return nil, fmt.Errorf("reading file %s: %w", path, err)
	}

	result, err := Validate(data)
	if err != nil {
		return nil, fmt.Errorf("validating %s: %w", path, err)
	}
	if !result.Valid {
		return nil, &ValidationError{Path: path, Issues: result.Issues}
	}

	pkg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parsing manifest %s: %w", path, err)
	}
	return pkg, nil
}

// Exists reports whether dir contains a package.json.
func Exists(dir string) bool {
	info, err := os.Stat(filepath.Join(dir, FileName))
	return err == nil && !info.IsDir()
}

// Parse decodes a project manifest. Object keys are read in document order so
// dependency slices match the order in which they were declared.
func Parse(data []byte) (*Package, error) {
	in := jlexer.Lexer{Data: data}
	var p Package

	in.Delim('{')
	for !in.IsDelim('}') {
		key := in.String()
		in.WantColon()
		switch key {
		case "name":
			p.Name = readString(&in)
		case "version":
			p.Version = readString(&in)
		case "dependencies":
			p.Dependencies = readDeps(&in)
		case "devDependencies":
			p.DevDependencies = readDeps(&in)
		default:
			in.SkipRecursive()
		}
		in.WantComma()
	}
	in.Delim('}')
	in.Consumed()

	if err := in.Error(); err != nil {
		return nil, err
	}
	return &p, nil
}

// MetadataPath returns the location of name's installed package.json.
func MetadataPath(dir, name string) string {
	return filepath.Join(dir, NodeModulesDir, filepath.FromSlash(name), FileName)
}

// ReadMetadata reads the installed package.json of dependency name under dir.
// Non-string values in the type fields are ignored rather than rejected.
func ReadMetadata(dir, name string) (*Metadata, error) {
	path := MetadataPath(dir, name)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading file %s: %w", path, err)
	}

	in := jlexer.Lexer{Data: data}
	var m Metadata

	in.Delim('{')
	for !in.IsDelim('}') {
		key := in.String()
		in.WantColon()
		switch key {
		case "name":
			m.Name = readLooseString(&in)
		case "version":
			m.Version = readLooseString(&in)
		case "types":
			m.Types = readLooseString(&in)
		case "typings":
			m.Typings = readLooseString(&in)
		default:
			in.SkipRecursive()
		}
		in.WantComma()
	}
	in.Delim('}')
	in.Consumed()

	if err := in.Error(); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return &m, nil
}

// BundledTypesLookup returns a lookup reporting whether a dependency installed
// under dir ships its own types.
func BundledTypesLookup(dir string) func(name string) (bool, error) {
	return func(name string) (bool, error) {
		m, err := ReadMetadata(dir, name)
		if err != nil {
			return false, err
		}
		return m.BundlesTypes(), nil
	}
}

func readString(in *jlexer.Lexer) string {
	if in.IsNull() {
		in.Skip()
		return ""
	}
	return in.String()
}

func readLooseString(in *jlexer.Lexer) string {
	s, _ := in.Interface().(string)
	return s
}

func readDeps(in *jlexer.Lexer) []Dep {
	if in.IsNull() {
		in.Skip()
		return nil
	}

	var deps []Dep
	in.Delim('{')
	for !in.IsDelim('}') {
		name := in.String()
		in.WantColon()
		deps = append(deps, Dep{Name: name, Version: readString(in)})
		in.WantComma()
	}
	in.Delim('}')
	return deps
}
