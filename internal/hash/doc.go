// Package hash provides the CRC32-Castagnoli checksums used for snapshot
// integrity and S3 upload validation.
//
// Go's hash/crc32 uses SSE4.2 or the ARM CRC extension for the Castagnoli
// polynomial when available.
//
//	sum := hash.CRC32C(data)
//
//	crc := uint32(0)
//	for _, chunk := range chunks {
//	    crc = hash.UpdateCRC32C(crc, chunk)
//	}
package hash
