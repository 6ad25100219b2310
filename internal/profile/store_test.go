package profile

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gstbill/internal/domain"
	"gstbill/internal/store"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	dir := t.TempDir()
	return NewStore(store.NewFile(filepath.Join(dir, "buyer_profiles.json"), filepath.Join(dir, "_backups")))
}

func TestCreate_GeneratesIDFromGSTIN(t *testing.T) {
	s := newTestStore(t)

	created, err := s.Create(domain.BuyerProfile{
		BuyerName: "Acme Traders",
		GSTIN:     "27AAACA1234A1Z5",
	})
	require.NoError(t, err)
	assert.Equal(t, "27AAACA1234A1Z5", created.ProfileID)
	assert.Equal(t, domain.TaxTypeIGST, created.DefaultTaxType)
}

func TestCreate_GeneratesIDFromNameWithoutGSTIN(t *testing.T) {
	s := newTestStore(t)

	created, err := s.Create(domain.BuyerProfile{BuyerName: "Shree Ram & Sons"})
	require.NoError(t, err)
	assert.Regexp(t, `^Shree_Ram_Sons_[0-9a-f]{8}$`, created.ProfileID)
}

func TestCreate_RejectsDuplicateID(t *testing.T) {
	s := newTestStore(t)

	_, err := s.Create(domain.BuyerProfile{ProfileID: "acme", BuyerName: "Acme"})
	require.NoError(t, err)

	_, err = s.Create(domain.BuyerProfile{ProfileID: "acme", BuyerName: "Acme Again"})
	assert.ErrorIs(t, err, domain.ErrDuplicateProfileID)
}

func TestCreate_RejectsEmptyName(t *testing.T) {
	s := newTestStore(t)

	_, err := s.Create(domain.BuyerProfile{BuyerName: "   "})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestCreate_TruncatesDetailLines(t *testing.T) {
	s := newTestStore(t)

	details := make([]string, domain.MaxBuyerDetailLines+3)
	for i := range details {
		details[i] = "line"
	}
	created, err := s.Create(domain.BuyerProfile{BuyerName: "Acme", BuyerDetails: details})
	require.NoError(t, err)
	assert.Len(t, created.BuyerDetails, domain.MaxBuyerDetailLines)
}

func TestGet(t *testing.T) {
	s := newTestStore(t)

	created, err := s.Create(domain.BuyerProfile{ProfileID: "acme", BuyerName: "Acme"})
	require.NoError(t, err)

	got, err := s.Get(created.ProfileID)
	require.NoError(t, err)
	assert.Equal(t, "Acme", got.BuyerName)

	_, err = s.Get("missing")
	assert.ErrorIs(t, err, domain.ErrProfileNotFound)
}

func TestList_SortedSkipsInvalid(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.file.Save([]domain.BuyerProfile{
		{ProfileID: "z", BuyerName: "zeta Mills"},
		{ProfileID: "", BuyerName: "No ID"},
		{ProfileID: "a", BuyerName: "Acme"},
		{ProfileID: "b", BuyerName: "   "},
	}))

	profiles, err := s.List()
	require.NoError(t, err)
	require.Len(t, profiles, 2)
	assert.Equal(t, "Acme", profiles[0].BuyerName)
	assert.Equal(t, "zeta Mills", profiles[1].BuyerName)
}

func TestUpdate(t *testing.T) {
	s := newTestStore(t)
	_, err := s.Create(domain.BuyerProfile{ProfileID: "acme", BuyerName: "Acme"})
	require.NoError(t, err)

	updated, err := s.Update("acme", domain.BuyerProfile{BuyerName: "Acme Traders", GSTIN: "27X"})
	require.NoError(t, err)
	assert.Equal(t, "acme", updated.ProfileID)
	assert.Equal(t, "Acme Traders", updated.BuyerName)

	_, err = s.Update("missing", domain.BuyerProfile{BuyerName: "Nobody"})
	assert.ErrorIs(t, err, domain.ErrProfileNotFound)
}

func TestDelete(t *testing.T) {
	s := newTestStore(t)
	_, err := s.Create(domain.BuyerProfile{ProfileID: "acme", BuyerName: "Acme"})
	require.NoError(t, err)

	require.NoError(t, s.Delete("acme"))
	_, err = s.Get("acme")
	assert.ErrorIs(t, err, domain.ErrProfileNotFound)

	assert.ErrorIs(t, s.Delete("acme"), domain.ErrProfileNotFound)
}
