package sessionstore

import (
	"context"
	"sync"

	"github.com/jhoicas/erp-portal/internal/domain/entity"
	"github.com/jhoicas/erp-portal/internal/domain/repository"
)

// Memory perfiles en memoria del proceso. Guarda los registros codificados para que
// una sesión cargada nunca comparta slices con la que se guardó.
type Memory struct {
	mu   sync.RWMutex
	data map[string]map[entity.Namespace][]byte
}

var _ repository.ProfileStores = (*Memory)(nil)

// NewMemory crea el almacén vacío.
func NewMemory() *Memory {
	return &Memory{data: make(map[string]map[entity.Namespace][]byte)}
}

// Profile implementa repository.ProfileStores.
func (m *Memory) Profile(profileID string) repository.SessionStore {
	return &memoryProfile{parent: m, id: profileID}
}

type memoryProfile struct {
	parent *Memory
	id     string
}

func (p *memoryProfile) Save(_ context.Context, s entity.Session) error {
	raw, err := Encode(s)
	if err != nil {
		return err
	}
	p.parent.mu.Lock()
	defer p.parent.mu.Unlock()
	ns, ok := p.parent.data[p.id]
	if !ok {
		ns = make(map[entity.Namespace][]byte, 2)
		p.parent.data[p.id] = ns
	}
	ns[s.Namespace] = raw
	return nil
}

func (p *memoryProfile) Load(_ context.Context, ns entity.Namespace) (entity.Session, bool) {
	p.parent.mu.RLock()
	raw, ok := p.parent.data[p.id][ns]
	p.parent.mu.RUnlock()
	if !ok {
		return entity.Session{}, false
	}
	s, err := Decode(ns, raw)
	if err != nil {
		return entity.Session{}, false
	}
	return s, true
}

func (p *memoryProfile) Clear(_ context.Context, ns entity.Namespace) error {
	p.parent.mu.Lock()
	defer p.parent.mu.Unlock()
	delete(p.parent.data[p.id], ns)
	if len(p.parent.data[p.id]) == 0 {
		delete(p.parent.data, p.id)
	}
	return nil
}
