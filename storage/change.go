package storage

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"

	"tennis-watch/logger"
)

// FingerprintOf digests a result into a Fingerprint. encoding/json fixes
// struct field order at compile time and sorts map keys, so two
// independently-built equal results always produce the same digest.
func FingerprintOf(result interface{}) (Fingerprint, error) {
	data, err := json.Marshal(result)
	if err != nil {
		return "", fmt.Errorf("fingerprinting result: %w", err)
	}
	sum := sha256.Sum256(data)
	return Fingerprint(hex.EncodeToString(sum[:])), nil
}

// DetectChange compares the current result against the fingerprint persisted
// by the previous run and saves the new fingerprint unconditionally, so the
// next run always compares against the immediately prior state. A first run
// with nothing stored reports a change.
func DetectChange(result interface{}, store Store, log logger.Logger) (bool, error) {
	fp, err := FingerprintOf(result)
	if err != nil {
		return false, err
	}

	prev, found, err := store.Load()
	if err != nil {
		return false, fmt.Errorf("loading previous fingerprint: %w", err)
	}

	changed := !found || prev != fp
	log.Info("change detection", "changed", changed, "firstRun", !found)

	if err := store.Save(fp); err != nil {
		return changed, fmt.Errorf("saving fingerprint: %w", err)
	}
	return changed, nil
}
