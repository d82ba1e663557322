// Package sessionstore implementa repository.SessionStore en memoria, archivos, Redis y PostgreSQL.
// Todas las variantes comparten el mismo formato de registro.
package sessionstore

import (
	"encoding/json"
	"fmt"

	"github.com/jhoicas/erp-portal/internal/application/dto"
	"github.com/jhoicas/erp-portal/internal/domain/entity"
)

// primaryRecord formato persistido del namespace primario.
type primaryRecord struct {
	AccessToken  string      `json:"access_token"`
	RefreshToken string      `json:"refresh_token"`
	User         dto.UserDTO `json:"user"`
}

// demoRecord formato persistido del namespace demo.
type demoRecord struct {
	DemoToken string      `json:"demo_token"`
	DemoUser  dto.UserDTO `json:"demo_user"`
}

// Encode serializa la sesión en el formato de su namespace.
func Encode(s entity.Session) ([]byte, error) {
	switch s.Namespace {
	case entity.NamespacePrimary:
		return json.Marshal(primaryRecord{
			AccessToken:  s.AccessToken,
			RefreshToken: s.RefreshToken,
			User:         dto.FromUser(s.User),
		})
	case entity.NamespaceDemo:
		return json.Marshal(demoRecord{DemoToken: s.AccessToken, DemoUser: dto.FromUser(s.User)})
	default:
		return nil, fmt.Errorf("sessionstore: namespace desconocido %q", s.Namespace)
	}
}

// Decode reconstruye la sesión; un registro sin token es inválido.
func Decode(ns entity.Namespace, raw []byte) (entity.Session, error) {
	switch ns {
	case entity.NamespacePrimary:
		var r primaryRecord
		if err := json.Unmarshal(raw, &r); err != nil {
			return entity.Session{}, fmt.Errorf("sessionstore: registro primario: %w", err)
		}
		if r.AccessToken == "" {
			return entity.Session{}, fmt.Errorf("sessionstore: registro primario sin access_token")
		}
		return entity.NewPrimarySession(r.AccessToken, r.RefreshToken, dto.ToUser(r.User)), nil
	case entity.NamespaceDemo:
		var r demoRecord
		if err := json.Unmarshal(raw, &r); err != nil {
			return entity.Session{}, fmt.Errorf("sessionstore: registro demo: %w", err)
		}
		if r.DemoToken == "" {
			return entity.Session{}, fmt.Errorf("sessionstore: registro demo sin demo_token")
		}
		return entity.NewDemoSession(r.DemoToken, dto.ToUser(r.DemoUser)), nil
	default:
		return entity.Session{}, fmt.Errorf("sessionstore: namespace desconocido %q", ns)
	}
}
