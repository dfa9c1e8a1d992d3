package archive

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"

	"github.com/ipfs/go-cid"

	"xdao.co/suiobj/digest"
)

// LocalFS is a filesystem-backed CAS. Objects live at <root>/<cid[:2]>/<cid>
// and are written once, read-only.
type LocalFS struct {
	root string
}

// NewLocalFS constructs a filesystem CAS rooted at root, creating it if needed.
func NewLocalFS(root string) (*LocalFS, error) {
	if root == "" {
		return nil, errors.New("archive: root directory is required")
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, err
	}
	return &LocalFS{root: root}, nil
}

// Root returns the directory the store writes under.
func (c *LocalFS) Root() string { return c.root }

func (c *LocalFS) Put(b []byte) (cid.Cid, error) {
	id, err := digest.CID(b)
	if err != nil {
		return cid.Undef, err
	}

	path := c.pathFor(id)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return cid.Undef, err
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o444)
	if err != nil {
		if os.IsExist(err) {
			existing, rerr := c.Get(id)
			if rerr != nil || !bytes.Equal(existing, b) {
				// Unreadable or corrupted on disk; never overwrite.
				return cid.Undef, ErrImmutable
			}
			return id, nil
		}
		return cid.Undef, err
	}

	if _, err := f.Write(b); err != nil {
		_ = f.Close()
		_ = os.Remove(path)
		return cid.Undef, err
	}
	if err := f.Sync(); err != nil {
		_ = f.Close()
		_ = os.Remove(path)
		return cid.Undef, err
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(path)
		return cid.Undef, err
	}
	return id, nil
}

func (c *LocalFS) Get(id cid.Cid) ([]byte, error) {
	if !id.Defined() {
		return nil, ErrInvalidCID
	}
	b, err := os.ReadFile(c.pathFor(id))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	got, err := digest.CID(b)
	if err != nil {
		return nil, err
	}
	if !got.Equals(id) {
		return nil, ErrCIDMismatch
	}
	return b, nil
}

func (c *LocalFS) Has(id cid.Cid) bool {
	if !id.Defined() {
		return false
	}
	_, err := os.Stat(c.pathFor(id))
	return err == nil
}

func (c *LocalFS) pathFor(id cid.Cid) string {
	s := id.String()
	if len(s) < 2 {
		return filepath.Join(c.root, s)
	}
	return filepath.Join(c.root, s[:2], s)
}
