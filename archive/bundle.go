package archive

import (
	"archive/tar"
	"encoding/json"
	"fmt"
	"io"
	"path"
	"slices"
	"strings"
	"time"

	"github.com/ipfs/go-cid"

	"xdao.co/suiobj/digest"
)

const (
	bundleVersion  = 1
	bundleIndex    = "index.json"
	snapshotPrefix = "snapshots/"
)

// Export writes a tar bundle holding the snapshots for ids. Labels optionally
// name snapshots (typically object ID -> CID) and are recorded in index.json.
//
// Identical inputs produce identical bytes: entries are sorted by CID and
// headers carry no host metadata.
func Export(w io.Writer, cas CAS, ids []cid.Cid, labels map[string]cid.Cid) error {
	if cas == nil {
		return fmt.Errorf("archive: nil CAS")
	}
	keys := make([]string, 0, len(ids))
	for _, id := range ids {
		if !id.Defined() {
			return ErrInvalidCID
		}
		keys = append(keys, id.String())
	}
	slices.Sort(keys)
	keys = slices.Compact(keys)

	tw := tar.NewWriter(w)
	idx := bundleIndexDoc{Version: bundleVersion}
	for _, k := range keys {
		id, _ := cid.Decode(k)
		b, err := cas.Get(id)
		if err != nil {
			_ = tw.Close()
			return fmt.Errorf("archive: export %s: %w", k, err)
		}
		if err := verify(id, b); err != nil {
			_ = tw.Close()
			return err
		}
		if err := writeEntry(tw, snapshotPrefix+k+".json", b); err != nil {
			_ = tw.Close()
			return err
		}
		idx.Snapshots = append(idx.Snapshots, bundleEntry{CID: k, Size: len(b)})
	}

	names := make([]string, 0, len(labels))
	for name := range labels {
		names = append(names, name)
	}
	slices.Sort(names)
	for _, name := range names {
		id := labels[name]
		if name == "" || !id.Defined() {
			_ = tw.Close()
			return fmt.Errorf("archive: invalid label %q", name)
		}
		idx.Labels = append(idx.Labels, bundleLabel{Name: name, CID: id.String()})
	}

	b, err := json.Marshal(idx)
	if err != nil {
		_ = tw.Close()
		return err
	}
	if err := writeEntry(tw, bundleIndex, append(b, '\n')); err != nil {
		_ = tw.Close()
		return err
	}
	return tw.Close()
}

// Import copies every snapshot in the bundle read from r into cas and returns
// their CIDs in bundle order. Each snapshot is checked against the CID in its
// entry name. Unknown entries fail the import.
func Import(r io.Reader, cas CAS) ([]cid.Cid, error) {
	if cas == nil {
		return nil, fmt.Errorf("archive: nil CAS")
	}
	tr := tar.NewReader(r)
	seen := map[string]bool{}
	var out []cid.Cid
	for {
		h, err := tr.Next()
		if err == io.EOF {
			return out, nil
		}
		if err != nil {
			return out, err
		}
		name := path.Clean(strings.TrimPrefix(h.Name, "./"))
		if h.Typeflag != tar.TypeReg || strings.Contains(name, "..") {
			return out, fmt.Errorf("archive: unexpected bundle entry %q", h.Name)
		}
		if name == bundleIndex {
			continue
		}
		k, ok := strings.CutPrefix(name, snapshotPrefix)
		if !ok || !strings.HasSuffix(k, ".json") {
			return out, fmt.Errorf("archive: unknown bundle entry %q", h.Name)
		}
		k = strings.TrimSuffix(k, ".json")
		id, err := cid.Decode(k)
		if err != nil {
			return out, fmt.Errorf("%w: %s", ErrInvalidCID, k)
		}
		if seen[k] {
			return out, fmt.Errorf("archive: duplicate bundle entry %s", k)
		}
		seen[k] = true

		b, err := io.ReadAll(tr)
		if err != nil {
			return out, err
		}
		if err := verify(id, b); err != nil {
			return out, err
		}
		got, err := cas.Put(b)
		if err != nil {
			return out, err
		}
		if !got.Equals(id) {
			return out, ErrCIDMismatch
		}
		out = append(out, id)
	}
}

type bundleIndexDoc struct {
	Version   int           `json:"version"`
	Snapshots []bundleEntry `json:"snapshots"`
	Labels    []bundleLabel `json:"labels,omitempty"`
}

type bundleEntry struct {
	CID  string `json:"cid"`
	Size int    `json:"size"`
}

type bundleLabel struct {
	Name string `json:"name"`
	CID  string `json:"cid"`
}

func verify(id cid.Cid, b []byte) error {
	got, err := digest.CID(b)
	if err != nil {
		return err
	}
	if !got.Equals(id) {
		return ErrCIDMismatch
	}
	return nil
}

func writeEntry(tw *tar.Writer, name string, b []byte) error {
	hdr := &tar.Header{
		Name:     name,
		Mode:     0o644,
		Size:     int64(len(b)),
		ModTime:  time.Unix(0, 0).UTC(),
		Typeflag: tar.TypeReg,
		Format:   tar.FormatPAX,
	}
	if err := tw.WriteHeader(hdr); err != nil {
		return err
	}
	_, err := tw.Write(b)
	return err
}
