package fragment

import (
	"github.com/minio/highwayhash"
)

var key = []byte("0123456789ABCDEF0123456789ABCDEF")

// Checksum computes a content checksum for the supplied data
func Checksum(data []byte) uint64 {
	return highwayhash.Sum64(data, key)
}
