package libdot

import (
	"crypto/sha256"
	"encoding/hex"

	"github.com/2x3systems/dotpath/dotpath"
)

type digest [sha256.Size]byte

// dropDupes remembers the raw digest of each accepted fingerprint rather than its hex string.
type dropDupes struct {
	seen map[digest]struct{}
}

type DropDupeOpts struct {
	SizeHint int // expected number of distinct tours
}

// NewDropDupes returns a TourAdder that accepts each fingerprint once.
func NewDropDupes(opts DropDupeOpts) dotpath.TourAdder {
	return &dropDupes{
		seen: make(map[digest]struct{}, max(opts.SizeHint, 0)),
	}
}

func (cat *dropDupes) TryAddTour(T dotpath.TourState) (bool, error) {
	key := fingerprintDigest(T.Fingerprint())
	if _, exists := cat.seen[key]; exists {
		return false, nil
	}
	cat.seen[key] = struct{}{}
	return true, nil
}

// fingerprintDigest decodes a hex sha256 fingerprint, hashing any other form of fingerprint.
func fingerprintDigest(fp string) (key digest) {
	if len(fp) == 2*len(key) {
		if _, err := hex.Decode(key[:], []byte(fp)); err == nil {
			return key
		}
	}
	return sha256.Sum256([]byte(fp))
}
