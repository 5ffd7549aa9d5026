package wire

import "hash/crc32"

// Checksum computes the IEEE 802.3 CRC-32 (reflected polynomial, initial
// and final XOR of 0xFFFFFFFF) over data, the same table every off-the-shelf
// CRC-32 implementation uses. The event wire format treats this table as a
// standard, external detail, so this wraps the standard library's table
// rather than redefine it.
func Checksum(data []byte) uint32 {
	return crc32.ChecksumIEEE(data)
}
