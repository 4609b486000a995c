package configid

import (
	"crypto/sha256"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

var (
	entropyOnce sync.Once
	entropy     *ulid.MonotonicEntropy
)

func newEntropy() *ulid.MonotonicEntropy {
	entropyOnce.Do(func() {
		source := rand.NewSource(time.Now().UnixNano())
		entropy = ulid.Monotonic(rand.New(source), 0)
	})
	return entropy
}

// New returns a ws_* ULID string.
func New() string {
	id := ulid.MustNew(ulid.Timestamp(time.Now()), newEntropy())
	return "ws_" + strings.ToLower(id.String())
}

// FromSeed returns a ws_* ULID derived from the seed bytes and timestamp.
// The same seed and timestamp always produce the same id.
func FromSeed(seed []byte, at time.Time) string {
	sum := sha256.Sum256(seed)
	ms := ulid.Timestamp(at)
	if ms > ulid.MaxTime() {
		ms = ulid.MaxTime()
	}
	var id ulid.ULID
	_ = id.SetTime(ms)
	_ = id.SetEntropy(sum[:10])
	return "ws_" + strings.ToLower(id.String())
}

// IsValid reports whether the string is a ws_* ULID.
func IsValid(value string) bool {
	if !strings.HasPrefix(value, "ws_") {
		return false
	}
	_, err := Parse(value)
	return err == nil
}

// Parse strips the ws_ prefix and returns the ULID.
func Parse(value string) (ulid.ULID, error) {
	value = strings.TrimSpace(value)
	value = strings.TrimPrefix(value, "ws_")
	value = strings.TrimPrefix(value, "WS_")
	return ulid.Parse(value)
}
