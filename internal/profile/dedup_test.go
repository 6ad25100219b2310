package profile

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gstbill/internal/domain"
	"gstbill/internal/store"
)

func TestDeduplicate_SameNameKeepsRicherRecord(t *testing.T) {
	profiles := []domain.BuyerProfile{
		{ProfileID: "a", BuyerName: "Acme Traders", BuyerDetails: []string{"Street 1", "City"}},
		{ProfileID: "b", BuyerName: "acme traders", BuyerDetails: []string{"Street 1"}},
	}

	cleaned := Deduplicate(profiles)
	require.Len(t, cleaned, 1)
	assert.Equal(t, "a", cleaned[0].ProfileID)
	assert.Len(t, cleaned[0].BuyerDetails, 2)
}

func TestDeduplicate_GSTINBreaksDetailTie(t *testing.T) {
	profiles := []domain.BuyerProfile{
		{ProfileID: "a", BuyerName: "Acme", BuyerDetails: []string{"x"}},
		{ProfileID: "b", BuyerName: "ACME", BuyerDetails: []string{"y"}, GSTIN: "27AAACA1234A1Z5"},
	}

	cleaned := Deduplicate(profiles)
	require.Len(t, cleaned, 1)
	assert.Equal(t, "b", cleaned[0].ProfileID)
}

func TestDeduplicate_SameIDFirstWins(t *testing.T) {
	profiles := []domain.BuyerProfile{
		{ProfileID: "dup", BuyerName: "First"},
		{ProfileID: "dup", BuyerName: "Second"},
	}

	cleaned := Deduplicate(profiles)
	require.Len(t, cleaned, 1)
	assert.Equal(t, "First", cleaned[0].BuyerName)
}

func TestDeduplicate_DropsInvalidAndSorts(t *testing.T) {
	profiles := []domain.BuyerProfile{
		{ProfileID: "z", BuyerName: "Zeta"},
		{ProfileID: "", BuyerName: "No ID"},
		{ProfileID: "a", BuyerName: "Acme"},
	}

	cleaned := Deduplicate(profiles)
	require.Len(t, cleaned, 2)
	assert.Equal(t, "Acme", cleaned[0].BuyerName)
	assert.Equal(t, "Zeta", cleaned[1].BuyerName)
}

func TestCleanup_RewritesStore(t *testing.T) {
	dir := t.TempDir()
	s := NewStore(store.NewFile(filepath.Join(dir, "buyer_profiles.json"), filepath.Join(dir, "_backups")))
	require.NoError(t, s.file.Save([]domain.BuyerProfile{
		{ProfileID: "a", BuyerName: "Acme", BuyerDetails: []string{"Street 1", "City"}},
		{ProfileID: "b", BuyerName: "ACME", BuyerDetails: []string{"Street 1"}},
		{ProfileID: "c", BuyerName: "Zed"},
	}))

	removed, err := s.Cleanup()
	require.NoError(t, err)
	assert.Equal(t, 1, removed)

	profiles, err := s.List()
	require.NoError(t, err)
	require.Len(t, profiles, 2)
	assert.Equal(t, "a", profiles[0].ProfileID)
}

func TestCleanup_NoChangesNoRewrite(t *testing.T) {
	dir := t.TempDir()
	s := NewStore(store.NewFile(filepath.Join(dir, "buyer_profiles.json"), filepath.Join(dir, "_backups")))
	require.NoError(t, s.file.Save([]domain.BuyerProfile{
		{ProfileID: "a", BuyerName: "Acme"},
	}))

	removed, err := s.Cleanup()
	require.NoError(t, err)
	assert.Equal(t, 0, removed)
}
