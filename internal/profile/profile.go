// Package profile holds the connection profile table: named lists of
// desired port connections, expressed as data. Profiles come from a
// built-in table plus user TOML files merged over it, so adding a setup
// never means duplicating wiring logic.
package profile

import (
	"fmt"

	"github.com/microtonal-studio/patchctl/internal/resolver"
	"github.com/microtonal-studio/patchctl/internal/transport"
)

// Profile is one named set of desired connections.
type Profile struct {
	Name        string
	Description string
	Links       []resolver.Spec
}

// Validate checks a profile for the mistakes a hand-edited TOML file can
// introduce.
func Validate(p *Profile) error {
	if p.Name == "" {
		return fmt.Errorf("profile has no name")
	}
	if len(p.Links) == 0 {
		return fmt.Errorf("profile %q has no links", p.Name)
	}

	seen := make(map[string]bool, len(p.Links))
	for i, link := range p.Links {
		if _, err := transport.ParseKind(string(link.Transport)); err != nil {
			return fmt.Errorf("profile %q link %d: %w", p.Name, i, err)
		}
		if link.Source.Pattern == "" {
			return fmt.Errorf("profile %q link %d: empty source pattern", p.Name, i)
		}
		if link.Dest.Pattern == "" {
			return fmt.Errorf("profile %q link %d: empty dest pattern", p.Name, i)
		}
		if link.Source.Port < 0 || link.Dest.Port < 0 {
			return fmt.Errorf("profile %q link %d: negative port", p.Name, i)
		}
		if seen[link.Label] {
			return fmt.Errorf("profile %q: duplicate label %q", p.Name, link.Label)
		}
		seen[link.Label] = true
	}
	return nil
}
