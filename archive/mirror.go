package archive

import (
	"fmt"

	"github.com/ipfs/go-cid"

	"xdao.co/suiobj/digest"
)

// Replica is a CAS with a stable name used in logs and PutAll results.
type Replica struct {
	Name string
	CAS  CAS
}

// Mirror writes every snapshot to all replicas and reads from the first one
// that has it, in slice order.
type Mirror struct {
	Replicas []Replica
}

var _ CAS = (*Mirror)(nil)

// PutAll writes b to every replica and reports the CID each one returned.
// A replica that disagrees with the CID computed from b fails the write with
// ErrCIDMismatch.
func (m *Mirror) PutAll(b []byte) (cid.Cid, map[string]cid.Cid, error) {
	want, err := digest.CID(b)
	if err != nil {
		return cid.Undef, nil, err
	}
	if len(m.Replicas) == 0 {
		return cid.Undef, nil, fmt.Errorf("archive: mirror has no replicas")
	}

	out := make(map[string]cid.Cid, len(m.Replicas))
	for _, r := range m.Replicas {
		if r.CAS == nil {
			return cid.Undef, nil, fmt.Errorf("archive: nil CAS for replica %q", r.Name)
		}
		got, err := r.CAS.Put(b)
		if err != nil {
			return cid.Undef, out, fmt.Errorf("archive: replica %q: %w", r.Name, err)
		}
		out[r.Name] = got
		if !got.Equals(want) {
			return cid.Undef, out, ErrCIDMismatch
		}
	}
	return want, out, nil
}

func (m *Mirror) Put(b []byte) (cid.Cid, error) {
	id, _, err := m.PutAll(b)
	return id, err
}

func (m *Mirror) Get(id cid.Cid) ([]byte, error) {
	if !id.Defined() {
		return nil, ErrInvalidCID
	}
	for _, r := range m.Replicas {
		if r.CAS == nil {
			continue
		}
		b, err := r.CAS.Get(id)
		if err == nil {
			return b, nil
		}
		if IsNotFound(err) {
			continue
		}
		return nil, err
	}
	return nil, ErrNotFound
}

func (m *Mirror) Has(id cid.Cid) bool {
	for _, r := range m.Replicas {
		if r.CAS != nil && r.CAS.Has(id) {
			return true
		}
	}
	return false
}

// OpenDirs opens an archive over local directories. The first directory is
// the primary; any others become mirrors. It returns nil when dirs is empty.
func OpenDirs(dirs ...string) (*Archive, error) {
	var replicas []Replica
	for _, dir := range dirs {
		if dir == "" {
			continue
		}
		fs, err := NewLocalFS(dir)
		if err != nil {
			return nil, err
		}
		replicas = append(replicas, Replica{Name: dir, CAS: fs})
	}
	switch len(replicas) {
	case 0:
		return nil, nil
	case 1:
		return New(replicas[0].CAS), nil
	default:
		return New(&Mirror{Replicas: replicas}), nil
	}
}
