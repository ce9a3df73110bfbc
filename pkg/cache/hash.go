package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
)

// Hash returns the hex SHA-256 of data. The pipeline hashes the effective
// update options plus defaults with it, so two updates that resolve from the
// same input share artifacts.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// digestKey returns "<prefix>:<sha256>" over the JSON encoding of parts.
func digestKey(prefix string, parts ...any) string {
	data, err := json.Marshal(parts)
	if err != nil {
		data = []byte(fmt.Sprint(parts...))
	}
	return prefix + ":" + Hash(data)
}
