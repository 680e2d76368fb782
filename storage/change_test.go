package storage

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tennis-watch/logger"
	"tennis-watch/types"
)

func sampleResult() []types.FilteredFacility {
	return []types.FilteredFacility{
		{
			Facility:   "La Rauze",
			FacilityID: "101",
			Courts: []types.Court{
				{Number: 1, Name: "Court 01", Covered: "V"},
				{Number: 2, Name: "Court 02", Covered: "F"},
			},
		},
	}
}

func TestDetectChangeFirstRunReportsChanged(t *testing.T) {
	store := NewMemoryStore()

	changed, err := DetectChange(sampleResult(), store, logger.Nop())
	require.NoError(t, err)
	assert.True(t, changed)
}

func TestDetectChangeIdenticalResultIsUnchanged(t *testing.T) {
	store := NewMemoryStore()

	_, err := DetectChange(sampleResult(), store, logger.Nop())
	require.NoError(t, err)

	// Second run rebuilds the result from scratch; equal content must
	// fingerprint identically regardless of when it was serialized.
	changed, err := DetectChange(sampleResult(), store, logger.Nop())
	require.NoError(t, err)
	assert.False(t, changed)
}

func TestDetectChangeSeesContentChange(t *testing.T) {
	store := NewMemoryStore()

	_, err := DetectChange(sampleResult(), store, logger.Nop())
	require.NoError(t, err)

	modified := sampleResult()
	modified[0].Courts = modified[0].Courts[:1]

	changed, err := DetectChange(modified, store, logger.Nop())
	require.NoError(t, err)
	assert.True(t, changed)

	// The new fingerprint was saved, so repeating the modified result is
	// quiet again.
	changed, err = DetectChange(modified, store, logger.Nop())
	require.NoError(t, err)
	assert.False(t, changed)
}

func TestFingerprintIndependentOfMapInsertionOrder(t *testing.T) {
	a := types.Timeslot{Time: "09h - 10h", Courts: map[string]types.CourtStatus{}}
	a.Courts["Court 01"] = types.CourtStatus{Status: "LIBRE", Available: true}
	a.Courts["Court 02"] = types.CourtStatus{Status: "Réservé"}

	b := types.Timeslot{Time: "09h - 10h", Courts: map[string]types.CourtStatus{}}
	b.Courts["Court 02"] = types.CourtStatus{Status: "Réservé"}
	b.Courts["Court 01"] = types.CourtStatus{Status: "LIBRE", Available: true}

	fpA, err := FingerprintOf(a)
	require.NoError(t, err)
	fpB, err := FingerprintOf(b)
	require.NoError(t, err)
	assert.Equal(t, fpA, fpB)
}

func TestFileStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "last_result.json")
	store := NewFileStore(path)

	_, found, err := store.Load()
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, store.Save(Fingerprint("abc123")))

	fp, found, err := store.Load()
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, Fingerprint("abc123"), fp)
}

func TestFileStoreWorksWithDetectChange(t *testing.T) {
	store := NewFileStore(filepath.Join(t.TempDir(), "state"))

	changed, err := DetectChange(sampleResult(), store, logger.Nop())
	require.NoError(t, err)
	assert.True(t, changed)

	changed, err = DetectChange(sampleResult(), store, logger.Nop())
	require.NoError(t, err)
	assert.False(t, changed)
}
