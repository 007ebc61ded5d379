package main

import (
	"encoding/hex"
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/minio/highwayhash"
)

// fingerprintKey is a fixed all-zero key: the hash here is a
// non-cryptographic content fingerprint used only to decide whether an
// archive changed since the last CLI invocation, not a security
// boundary, so key secrecy doesn't matter.
var fingerprintKey = make([]byte, 32)

// cacheEntry pairs an archive's last-seen fingerprint with the scan
// statistics produced that time, never the Index itself.
type cacheEntry struct {
	Fingerprint string    `json:"fingerprint"`
	Stats       ScanStats `json:"stats"`
}

// fingerprintCache persists cacheEntry values across CLI invocations
// so that re-running "jandex scan" against an unchanged jar skips
// re-parsing every class file in it.
type fingerprintCache struct {
	path    string
	entries map[string]cacheEntry
}

func loadFingerprintCache(path string) *fingerprintCache {
	fc := &fingerprintCache{path: path, entries: make(map[string]cacheEntry)}
	data, err := os.ReadFile(path)
	if err == nil {
		_ = json.Unmarshal(data, &fc.entries)
	}
	return fc
}

func fingerprintOf(data []byte) string {
	sum := highwayhash.Sum128(data, fingerprintKey)
	return hex.EncodeToString(sum[:])
}

// lookup returns the cached stats for scanPath if its current content
// fingerprint still matches what was last recorded.
func (fc *fingerprintCache) lookup(scanPath string, data []byte) (ScanStats, bool) {
	entry, ok := fc.entries[scanPath]
	if !ok || entry.Fingerprint != fingerprintOf(data) {
		return ScanStats{}, false
	}
	return entry.Stats, true
}

func (fc *fingerprintCache) store(scanPath string, data []byte, stats ScanStats) {
	fc.entries[scanPath] = cacheEntry{Fingerprint: fingerprintOf(data), Stats: stats}
	out, err := json.MarshalIndent(fc.entries, "", "  ")
	if err != nil {
		return
	}
	if err := os.MkdirAll(filepath.Dir(fc.path), 0o755); err != nil {
		return
	}
	_ = os.WriteFile(fc.path, out, 0o644)
}

func defaultCachePath() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		dir = os.TempDir()
	}
	return filepath.Join(dir, "jandex", "fingerprints.json")
}
