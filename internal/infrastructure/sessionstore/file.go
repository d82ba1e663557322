package sessionstore

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"

	"github.com/jhoicas/erp-portal/internal/domain/entity"
	"github.com/jhoicas/erp-portal/internal/domain/repository"
)

// validProfileID evita que un id de perfil salga del directorio base.
var validProfileID = regexp.MustCompile(`^[A-Za-z0-9_-]{1,128}$`)

// File un directorio por perfil: primary.json y demo.json.
type File struct {
	dir string
}

var _ repository.ProfileStores = (*File)(nil)

// NewFile crea el directorio base (0700) si no existe.
func NewFile(dir string) (*File, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("sessionstore: crear %s: %w", dir, err)
	}
	return &File{dir: dir}, nil
}

// Profile implementa repository.ProfileStores.
func (f *File) Profile(profileID string) repository.SessionStore {
	return &fileProfile{dir: filepath.Join(f.dir, profileID), valid: validProfileID.MatchString(profileID)}
}

type fileProfile struct {
	dir   string
	valid bool
}

func (p *fileProfile) path(ns entity.Namespace) string {
	return filepath.Join(p.dir, string(ns)+".json")
}

// Save escribe en un temporal y renombra: un lector nunca ve un registro a medias.
func (p *fileProfile) Save(_ context.Context, s entity.Session) error {
	if !p.valid {
		return fmt.Errorf("sessionstore: id de perfil inválido")
	}
	raw, err := Encode(s)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(p.dir, 0o700); err != nil {
		return fmt.Errorf("sessionstore: crear perfil: %w", err)
	}
	tmp, err := os.CreateTemp(p.dir, "."+string(s.Namespace)+"-*.tmp")
	if err != nil {
		return fmt.Errorf("sessionstore: temporal: %w", err)
	}
	name := tmp.Name()
	defer os.Remove(name)

	if err := tmp.Chmod(0o600); err != nil {
		tmp.Close()
		return fmt.Errorf("sessionstore: chmod: %w", err)
	}
	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		return fmt.Errorf("sessionstore: escribir: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("sessionstore: sync: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("sessionstore: cerrar: %w", err)
	}
	if err := os.Rename(name, p.path(s.Namespace)); err != nil {
		return fmt.Errorf("sessionstore: renombrar: %w", err)
	}
	return nil
}

func (p *fileProfile) Load(_ context.Context, ns entity.Namespace) (entity.Session, bool) {
	if !p.valid {
		return entity.Session{}, false
	}
	raw, err := os.ReadFile(p.path(ns))
	if err != nil {
		return entity.Session{}, false
	}
	s, err := Decode(ns, raw)
	if err != nil {
		return entity.Session{}, false
	}
	return s, true
}

func (p *fileProfile) Clear(_ context.Context, ns entity.Namespace) error {
	if !p.valid {
		return nil
	}
	if err := os.Remove(p.path(ns)); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("sessionstore: borrar: %w", err)
	}
	return nil
}
