// Package ledger computes the tamper-evidence fingerprint recorded with each
// report. The hash is informational: it is stored at creation time so the
// canonical fields can later be re-hashed and compared, but no audit path
// recomputes it automatically.
package ledger

import (
	"crypto/sha256"
	"encoding/hex"
	"strconv"
	"time"

	"github.com/google/uuid"
)

// ContentHash returns the hex SHA-256 digest over the submitter id, title,
// location and submission instant. The instant must be captured once by the
// caller and reused for both the hash and the stored created_at, otherwise
// two reads of "now" would make the fingerprint unverifiable.
func ContentHash(userID uuid.UUID, title, location string, at time.Time) string {
	h := sha256.New()
	h.Write([]byte(userID.String()))
	h.Write([]byte(title))
	h.Write([]byte(location))
	h.Write([]byte(strconv.FormatInt(at.UnixMilli(), 10)))
	return hex.EncodeToString(h.Sum(nil))
}
