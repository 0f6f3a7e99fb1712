package identity

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// namespace keeps agent ids from colliding with ids derived
// for any other kind of external name.
const namespace = "moltbook"

// AgentID derives the internal identifier for an external agent name.
// The same name always maps to the same id, so independent handlers can
// agree on an agent's row without a shared lookup table. The name is
// hashed as-is: no trimming, no case folding.
func AgentID(name string) string {
	sum := sha256.Sum256([]byte(namespace + ":" + name))
	h := hex.EncodeToString(sum[:])

	// first 32 hex chars in the canonical 8-4-4-4-12 grouping
	return fmt.Sprintf("%s-%s-%s-%s-%s", h[0:8], h[8:12], h[12:16], h[16:20], h[20:32])
}
