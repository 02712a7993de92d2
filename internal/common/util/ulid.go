package util

import (
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/oklog/ulid"
)

var (
	entropy      = ulid.Monotonic(rand.New(rand.NewSource(time.Now().UnixNano())), 0)
	entropyMutex sync.Mutex
)

// NewULID returns a lowercase ULID. Ids from the same process sort in creation order, like Armada job ids.
func NewULID() string {
	entropyMutex.Lock()
	defer entropyMutex.Unlock()
	return strings.ToLower(ulid.MustNew(ulid.Now(), entropy).String())
}

// NewULIDs returns n ULIDs in ascending order.
func NewULIDs(n int) []string {
	ids := make([]string, n)
	for i := range ids {
		ids[i] = NewULID()
	}
	return ids
}
