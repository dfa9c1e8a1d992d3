package archive

import (
	"bytes"
	"sync"

	"github.com/ipfs/go-cid"

	"xdao.co/suiobj/digest"
)

// Memory is an in-process CAS. It is safe for concurrent use.
type Memory struct {
	mu      sync.RWMutex
	objects map[string][]byte
}

func NewMemory() *Memory {
	return &Memory{objects: map[string][]byte{}}
}

func (m *Memory) Put(b []byte) (cid.Cid, error) {
	id, err := digest.CID(b)
	if err != nil {
		return cid.Undef, err
	}
	key := id.KeyString()

	m.mu.Lock()
	defer m.mu.Unlock()
	if existing, ok := m.objects[key]; ok {
		if !bytes.Equal(existing, b) {
			return cid.Undef, ErrImmutable
		}
		return id, nil
	}
	m.objects[key] = bytes.Clone(b)
	return id, nil
}

func (m *Memory) Get(id cid.Cid) ([]byte, error) {
	if !id.Defined() {
		return nil, ErrInvalidCID
	}
	m.mu.RLock()
	b, ok := m.objects[id.KeyString()]
	m.mu.RUnlock()
	if !ok {
		return nil, ErrNotFound
	}
	return bytes.Clone(b), nil
}

func (m *Memory) Has(id cid.Cid) bool {
	if !id.Defined() {
		return false
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.objects[id.KeyString()]
	return ok
}

// Len reports the number of stored objects.
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.objects)
}
