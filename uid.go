package dicom

import (
	"crypto/md5"
	"encoding/binary"
	"fmt"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
)

// implementationClassUID/VersionName identify this library in the file meta
// group of files it writes, per PS3.5 7.1.
const (
	implementationRoot        = "1.2.826.0.1.3680043.10.1"
	implementationClassUID    = implementationRoot + ".1"
	implementationVersionName = "DICOMKIT_1"
)

// UIDGenerator mints UIDs of the form {root}.{deviceSalt}.{epochMicros}.{seq},
// truncated to 64 characters (UI's PS3.5 max length). deviceSalt is derived
// once at construction by hashing a random UUID into decimal digits; a
// monotonic counter on top of it ensures concurrent callers within the same
// process never collide even if two calls land in the same microsecond.
type UIDGenerator struct {
	root       string
	deviceSalt string
	counter    uint64
}

// NewUIDGenerator builds a generator rooted at root, deriving its device
// salt from a fresh random UUID. root should be an organization's assigned
// OID prefix; callers that don't have one can use implementationRoot.
func NewUIDGenerator(root string) *UIDGenerator {
	return &UIDGenerator{root: root, deviceSalt: deviceSaltFromUUID(uuid.New())}
}

// deviceSaltFromUUID hashes a UUID's bytes with MD5 and reads the first 4
// bytes back as an unsigned decimal run (at most 10 digits), giving a stable
// per-process salt that's still just digits -- UI values may carry only a
// restricted character set (PS3.5 6.2).
func deviceSaltFromUUID(id uuid.UUID) string {
	sum := md5.Sum(id[:])
	n := binary.BigEndian.Uint32(sum[:4])
	return strconv.FormatUint(uint64(n), 10)
}

// Generate mints a new UID. Concurrency-safe.
func (g *UIDGenerator) Generate() string {
	seq := atomic.AddUint64(&g.counter, 1)
	prefix := fmt.Sprintf("%s.%s.%d.", g.root, g.deviceSalt, time.Now().UnixMicro())
	counter := strconv.FormatUint(seq, 10)

	if len(prefix)+len(counter) > 64 {
		// Truncate the counter, not the formatted string as a whole --
		// slicing the whole string risks cutting mid-digit or leaving a
		// trailing separator if the cut lands on a '.'.
		room := 64 - len(prefix)
		if room < 0 {
			room = 0
		}
		counter = counter[:room]
	}
	return prefix + counter
}

// defaultUIDGenerator is the process-wide instance GenerateStudyInstanceUID
// and friends draw from, so callers never need to thread a generator
// through by hand.
var defaultUIDGenerator = NewUIDGenerator(implementationRoot)

// GenerateStudyInstanceUID mints a UID suitable for StudyInstanceUID.
func GenerateStudyInstanceUID() string { return defaultUIDGenerator.Generate() }

// GenerateSeriesInstanceUID mints a UID suitable for SeriesInstanceUID.
func GenerateSeriesInstanceUID() string { return defaultUIDGenerator.Generate() }

// GenerateSOPInstanceUID mints a UID suitable for SOPInstanceUID.
func GenerateSOPInstanceUID() string { return defaultUIDGenerator.Generate() }
