package verdict

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDenylist_EmptyPath(t *testing.T) {
	d, err := LoadDenylist("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.Len() != 0 {
		t.Errorf("expected empty denylist, got %d entries", d.Len())
	}
	if d.MatchesHost("anything.example") {
		t.Error("empty denylist must never match")
	}
}

func TestLoadDenylist_FromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fake-domains.yaml")
	content := `domains:
  - mailinator.com
  - Throwaway.Email
suffixes:
  - .invalid
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	d, err := LoadDenylist(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.Len() != 3 {
		t.Fatalf("expected 3 entries, got %d", d.Len())
	}

	tests := []struct {
		host string
		want bool
	}{
		{"mailinator.com", true},
		{"throwaway.email", true}, // entries are normalised to lowercase
		{"sub.mailinator.com", false},
		{"phish.invalid", true},
		{"example.com", false},
	}
	for _, tt := range tests {
		if got := d.MatchesHost(tt.host); got != tt.want {
			t.Errorf("MatchesHost(%q) = %v, want %v", tt.host, got, tt.want)
		}
	}
}

func TestLoadDenylist_MissingFile(t *testing.T) {
	if _, err := LoadDenylist("/nonexistent/fake-domains.yaml"); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestLoadDenylist_MalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.yaml")
	if err := os.WriteFile(path, []byte("domains: [unclosed"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadDenylist(path); err == nil {
		t.Fatal("expected error for malformed YAML")
	}
}
