//go:build wheelsieve32

package wheelsieve

type word = uint32
