package services

import (
	"context"

	"github.com/Czaki/napari-release-tools/internal/domain/ports"
)

// UserDirectory resolves logins to display names. It is append-only: a
// login is resolved at most once per run, which keeps API round-trips down.
// Resolution priority: correction table, then profile name, then the login
// itself.
type UserDirectory struct {
	lookup      ports.UserLookup
	corrections map[string]string
	names       map[string]string
}

func NewUserDirectory(lookup ports.UserLookup, corrections map[string]string) *UserDirectory {
	if corrections == nil {
		corrections = map[string]string{}
	}
	return &UserDirectory{
		lookup:      lookup,
		corrections: corrections,
		names:       make(map[string]string),
	}
}

// Resolve records the display name for a login. Already-known logins are
// skipped without touching the lookup; a correction table hit skips the
// lookup too.
func (d *UserDirectory) Resolve(ctx context.Context, login string) error {
	if _, known := d.names[login]; known {
		return nil
	}

	if name, ok := d.corrections[login]; ok {
		d.names[login] = name
		return nil
	}

	user, err := d.lookup.GetUser(ctx, login)
	if err != nil {
		return err
	}

	if user.Name == "" {
		d.names[login] = login
	} else {
		d.names[login] = user.Name
	}
	return nil
}

// DisplayName returns the resolved name, falling back to the login for
// anything never resolved.
func (d *UserDirectory) DisplayName(login string) string {
	if name, ok := d.names[login]; ok {
		return name
	}
	return login
}
