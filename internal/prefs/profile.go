package prefs

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/hotprospects/hotprospects/internal/prospect"
)

const (
	DefaultName  = "Anonymous"
	DefaultEmail = "you@yoursite.com"
)

// Profile is the user's own card, encoded into their QR code.
type Profile struct {
	Name         string `toml:"name" json:"name"`
	EmailAddress string `toml:"email_address" json:"emailAddress"`
}

func DefaultProfile() Profile {
	return Profile{Name: DefaultName, EmailAddress: DefaultEmail}
}

// Payload is the text carried by the profile's QR code.
func (p Profile) Payload() string {
	return prospect.Payload(p.Name, p.EmailAddress)
}

// LoadProfile reads the profile at path. A missing file or missing keys fall
// back to the defaults.
func LoadProfile(path string) (Profile, error) {
	p := DefaultProfile()
	if _, err := toml.DecodeFile(path, &p); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return DefaultProfile(), nil
		}
		return DefaultProfile(), fmt.Errorf("load profile: %w", err)
	}
	return p, nil
}

// SaveProfile writes p to path atomically. Concurrent saves each use their
// own temp file; the last rename wins.
func SaveProfile(path string, p Profile) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir profile dir: %w", err)
	}
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(p); err != nil {
		return fmt.Errorf("encode profile: %w", err)
	}
	f, err := os.CreateTemp(filepath.Dir(path), ".profile-*.tmp")
	if err != nil {
		return fmt.Errorf("save profile: %w", err)
	}
	tmp := f.Name()
	if _, err := f.Write(buf.Bytes()); err != nil {
		_ = f.Close()
		_ = os.Remove(tmp)
		return fmt.Errorf("save profile: %w", err)
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("save profile: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("save profile: %w", err)
	}
	return nil
}
