package image

import (
	"crypto/md5"
	"encoding/binary"
	"encoding/hex"
	"math/rand"
)

// SimulatedInspector is a stand-in for a real image-inspection backend
// (perceptual-hash lookup, GAN-image classifier, quality estimator). It
// derives every signal deterministically from the URL hash so repeated
// analyses of the same profile agree, but the signals carry no real
// information about the image. Swap in a real Inspector in production.
type SimulatedInspector struct {
	knownFakeHashes map[string]struct{}
}

func NewSimulatedInspector() *SimulatedInspector {
	// A real deployment would load a regularly updated hash corpus.
	hashes := []string{
		"a1b2c3d4e5f6a7b8c9d0",
		"b2c3d4e5f6a7b8c9d0e1",
		"c3d4e5f6a7b8c9d0e1f2",
		"d4e5f6a7b8c9d0e1f2a3",
		"e5f6a7b8c9d0e1f2a3b4",
		"f6a7b8c9d0e1f2a3b4c5",
	}
	set := make(map[string]struct{}, len(hashes))
	for _, h := range hashes {
		set[h] = struct{}{}
	}
	return &SimulatedInspector{knownFakeHashes: set}
}

// Inspect is safe for concurrent use: the hash set is read-only and the RNG
// is local to the call.
func (s *SimulatedInspector) Inspect(url string) (Signals, error) {
	sum := md5.Sum([]byte(url))
	hash := hex.EncodeToString(sum[:])[:20]

	seed := int64(binary.BigEndian.Uint64(sum[:8]) % 1000)
	rng := rand.New(rand.NewSource(seed))

	_, isKnownFake := s.knownFakeHashes[hash]

	return Signals{
		Hash:          hash,
		IsStockPhoto:  isKnownFake,
		IsAIGenerated: rng.Float64() < 0.15,
		QualityScore:  0.3 + rng.Float64()*0.7,
	}, nil
}
