package ledgerlink

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"

	"github.com/agentstation/ledgerlink/pkg/errors"
	"github.com/agentstation/ledgerlink/pkg/ledgers"
)

// Fingerprint hashes the canonical JSON of the three ledgers. Struct fields
// encode in declaration order, so equal inputs always hash equally.
func Fingerprint(site *ledgers.SiteLedger, money *ledgers.MoneyLedger, place *ledgers.PlaceLedger) (string, error) {
	h := sha256.New()
	for _, part := range []struct {
		name string
		doc  any
	}{
		{"site", site},
		{"money", money},
		{"place", place},
	} {
		data, err := json.Marshal(part.doc)
		if err != nil {
			return "", errors.WrapLedger(part.name, err)
		}
		h.Write([]byte(part.name))
		h.Write([]byte{0})
		h.Write(data)
		h.Write([]byte{0})
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
