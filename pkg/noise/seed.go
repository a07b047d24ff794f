package noise

import (
	"encoding/binary"
	"math"

	"github.com/cespare/xxhash/v2"
)

// DefaultSeed is used by nodes that leave Seed unset.
const DefaultSeed = "default"

// SeedFromString hashes a document seed to the integer seed of a generator.
// The mapping is fixed (xxhash64 of the UTF-8 bytes), so documents produce the
// same terrain on every platform and release.
func SeedFromString(s string) int64 {
	return int64(xxhash.Sum64String(s))
}

// HashCell mixes a seed with integer lattice coordinates.
func HashCell(seed uint64, x, y, z int64) uint64 {
	var buf [32]byte
	binary.LittleEndian.PutUint64(buf[0:], seed)
	binary.LittleEndian.PutUint64(buf[8:], uint64(x))
	binary.LittleEndian.PutUint64(buf[16:], uint64(y))
	binary.LittleEndian.PutUint64(buf[24:], uint64(z))
	return xxhash.Sum64(buf[:])
}

// Unit maps a hash to [0, 1).
func Unit(h uint64) float64 {
	return float64(h>>11) / (1 << 53)
}

// Signed maps a hash to [-1, 1).
func Signed(h uint64) float64 {
	return Unit(h)*2 - 1
}

// Remix derives an independent hash from h.
func Remix(h uint64, salt uint64) uint64 {
	var buf [16]byte
	binary.LittleEndian.PutUint64(buf[0:], h)
	binary.LittleEndian.PutUint64(buf[8:], salt)
	return xxhash.Sum64(buf[:])
}

func fastFloor(x float64) int {
	return int(math.Floor(x))
}
