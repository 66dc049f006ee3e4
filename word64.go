//go:build !wheelsieve32

package wheelsieve

// word is the bit-store word. Build with -tags wheelsieve32 for 32-bit words.
type word = uint64
