package archive

import (
	"encoding/json"

	"github.com/ipfs/go-cid"

	"xdao.co/suiobj/digest"
	"xdao.co/suiobj/suiobj"
)

// Archive stores node responses in a CAS.
type Archive struct {
	CAS CAS
}

func New(cas CAS) *Archive { return &Archive{CAS: cas} }

// Put stores the canonical JSON of resp and returns its CID. The CID is the
// same one ParseWithOwner logs as response_cid.
func (a *Archive) Put(resp *suiobj.ObjectResponse) (cid.Cid, error) {
	b, want, err := digest.Of(resp)
	if err != nil {
		return cid.Undef, err
	}
	id, err := a.CAS.Put(b)
	if err != nil {
		return cid.Undef, err
	}
	if !id.Equals(want) {
		return cid.Undef, ErrCIDMismatch
	}
	return id, nil
}

// Get loads a response snapshot. Move field numbers keep their exact form.
func (a *Archive) Get(id cid.Cid) (*suiobj.ObjectResponse, error) {
	b, err := a.CAS.Get(id)
	if err != nil {
		return nil, err
	}
	var resp suiobj.ObjectResponse
	if err := json.Unmarshal(b, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (a *Archive) Has(id cid.Cid) bool { return a.CAS.Has(id) }
