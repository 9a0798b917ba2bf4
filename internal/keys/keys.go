// Package keys provides hash-distributed partition keys for constraint and
// search-term records.
package keys

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"hash/fnv"
)

// ConstraintPK computes a hash-distributed partition key for a unique
// constraint record. Hashing spreads constraints across partitions,
// eliminating hot partition risk for common field values.
func ConstraintPK(collection, field, value string) string {
	data := fmt.Sprintf("%s#%s#%s", collection, field, value)
	h := sha256.Sum256([]byte(data))
	return hex.EncodeToString(h[:16]) // 128-bit hash as hex
}

// SearchPK computes the sharded partition key for a caption search term.
// With numShards=1, all records for a term go to shard "00".
// With numShards>1, records are distributed across shards based on term hash.
func SearchPK(term string, numShards int) string {
	if numShards <= 1 {
		return fmt.Sprintf("%s#00", term)
	}
	h := fnv.New32a()
	h.Write([]byte(term))
	shard := h.Sum32() % uint32(numShards)
	return fmt.Sprintf("%s#%02x", term, shard)
}
