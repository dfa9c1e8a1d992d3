// Package archive keeps content-addressed snapshots of node responses.
//
// A response is stored as its canonical JSON (see package digest) and keyed
// by the CIDv1 of those bytes, so archiving the same response twice yields
// the same CID and a snapshot can always be verified against its key.
package archive

import (
	"errors"

	"github.com/ipfs/go-cid"
)

// CAS is a minimal content-addressable byte store.
//
// Contract:
// - Put MUST be idempotent.
// - Stored objects MUST be immutable.
// - CIDs MUST be derived from the bytes written (CIDv1, raw, sha2-256).
// - Get MUST return ErrNotFound when the CID is absent.
type CAS interface {
	Put(bytes []byte) (cid.Cid, error)
	Get(id cid.Cid) ([]byte, error)
	Has(id cid.Cid) bool
}

var (
	ErrNotFound    = errors.New("archive: not found")
	ErrInvalidCID  = errors.New("archive: invalid cid")
	ErrCIDMismatch = errors.New("archive: cid mismatch")
	ErrImmutable   = errors.New("archive: immutable object mismatch")
)

func IsNotFound(err error) bool { return errors.Is(err, ErrNotFound) }
