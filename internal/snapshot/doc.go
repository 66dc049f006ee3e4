// Package snapshot encodes finished sieves for storage.
//
// Format (little-endian):
//
//	Offset  Size  Field
//	0       4     magic "WSNP"
//	4       2     format version
//	6       1     word width in bits (32 or 64)
//	7       1     compression (0=none, 1=lz4, 2=zstd)
//	8       8     bound
//	16      8     word count
//	24      4     CRC32C of the uncompressed payload
//	28      12    reserved, must be zero
//	40      ...   payload: the words as little-endian integers, optionally
//	              wrapped in an LZ4 frame or a zstd stream
//
// The word count is redundant with the bound and is checked on decode, so a
// corrupt header cannot make the decoder allocate an arbitrary amount.
package snapshot
