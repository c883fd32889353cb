package verdict

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Denylist is a static list of known-fake domains checked before any oracle
// call is spent. Matching is by exact domain or by suffix (".example" catches
// every subdomain and TLD-style pattern).
type Denylist struct {
	domains  map[string]struct{}
	suffixes []string
}

type denylistFile struct {
	Domains  []string `yaml:"domains"`
	Suffixes []string `yaml:"suffixes"`
}

// LoadDenylist reads a YAML denylist file. An empty path yields an empty
// list, which never matches.
func LoadDenylist(path string) (*Denylist, error) {
	d := &Denylist{domains: make(map[string]struct{})}
	if path == "" {
		return d, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("denylist: read %s: %w", path, err)
	}

	var f denylistFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("denylist: parse %s: %w", path, err)
	}

	for _, dom := range f.Domains {
		dom = strings.ToLower(strings.TrimSpace(dom))
		if dom != "" {
			d.domains[dom] = struct{}{}
		}
	}
	for _, suf := range f.Suffixes {
		suf = strings.ToLower(strings.TrimSpace(suf))
		if suf != "" {
			d.suffixes = append(d.suffixes, suf)
		}
	}
	return d, nil
}

// Len reports the number of configured entries.
func (d *Denylist) Len() int {
	return len(d.domains) + len(d.suffixes)
}

// MatchesHost reports whether host (a bare domain, lowercased by the caller's
// format stage) is denied.
func (d *Denylist) MatchesHost(host string) bool {
	host = strings.ToLower(host)
	if _, ok := d.domains[host]; ok {
		return true
	}
	for _, suf := range d.suffixes {
		if strings.HasSuffix(host, suf) {
			return true
		}
	}
	return false
}
