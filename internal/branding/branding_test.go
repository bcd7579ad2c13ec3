package branding

import "testing"

func TestEmbeddedValues(t *testing.T) {
	tests := []struct {
		name string
		got  string
		want string
	}{
		{"CLIName", CLIName(), "typefill"},
		{"HomeDir", HomeDir(), ".typefill"},
		{"EnvPrefix", EnvPrefix(), "TYPEFILL"},
		{"RegistryURL", RegistryURL(), "https://registry.npmjs.org/"},
		{"TypesScope", TypesScope(), "@types/"},
		{"GoModule", GoModule(), "github.com/typefill-labs/typefill"},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("%s() = %q, want %q", tt.name, tt.got, tt.want)
		}
	}
	if DisplayName() == "" || Description() == "" {
		t.Error("display name and description must not be empty")
	}
}

func TestEnvVar(t *testing.T) {
	if got := EnvVar("concurrency"); got != "TYPEFILL_CONCURRENCY" {
		t.Errorf("EnvVar(concurrency) = %q", got)
	}
}
