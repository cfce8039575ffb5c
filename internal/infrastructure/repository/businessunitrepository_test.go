package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carmen-hq/carmen/internal/domain/businessunit"
	"github.com/carmen-hq/carmen/internal/shared/query"
)

func createTestBusinessUnit(t *testing.T, repo businessunit.Repository, clusterID uint, code, name string) *businessunit.BusinessUnit {
	t.Helper()
	bu := &businessunit.BusinessUnit{
		ClusterID:         clusterID,
		Code:              code,
		Name:              name,
		IsActive:          true,
		CalculationMethod: "fifo",
	}
	require.NoError(t, repo.Create(context.Background(), bu))
	return bu
}

func TestBusinessUnitRepository_Create(t *testing.T) {
	db := setupTestDB(t)
	repo := NewBusinessUnitRepository(db, testLogger())
	ctx := context.Background()

	t.Run("create with structured blocks round-trips", func(t *testing.T) {
		bu := &businessunit.BusinessUnit{
			ClusterID: 1,
			Code:      "BKK01",
			Name:      "Bangkok Riverside",
			IsActive:  true,
			HotelContact: businessunit.ContactInfo{
				Name:  "Front Desk",
				Tel:   "+66-2-123-4567",
				Email: "frontdesk@example.com",
				City:  "Bangkok",
			},
			Tax: businessunit.TaxInfo{TaxID: "0105551234567", TaxRate: 7},
			AmountFormat: &businessunit.NumberFormat{
				Locales:               "th-TH",
				MinimumFractionDigits: 2,
				MaximumFractionDigits: 2,
			},
			CalculationMethod: "avg",
			Config: []businessunit.ConfigEntry{
				{Key: "checkout_time", Label: "Checkout Time", DataType: "string", Value: "12:00"},
			},
			DBConnection: &businessunit.DBConnection{
				Driver:   "mysql",
				Host:     "reports.internal",
				Port:     3306,
				Database: "bkk01",
				Username: "reporter",
				Password: "s3cret",
			},
		}
		require.NoError(t, repo.Create(ctx, bu))
		require.NotZero(t, bu.ID)

		found, err := repo.GetByID(ctx, bu.ID)
		require.NoError(t, err)
		require.NotNil(t, found)
		assert.Equal(t, "Front Desk", found.HotelContact.Name)
		assert.Equal(t, 7.0, found.Tax.TaxRate)
		require.NotNil(t, found.AmountFormat)
		assert.Equal(t, "th-TH", found.AmountFormat.Locales)
		assert.Equal(t, 2, found.AmountFormat.MaximumFractionDigits)
		assert.Equal(t, "avg", found.CalculationMethod)
		require.Len(t, found.Config, 1)
		assert.Equal(t, "checkout_time", found.Config[0].Key)
		require.NotNil(t, found.DBConnection)
		assert.Equal(t, "s3cret", found.DBConnection.Password)
	})

	t.Run("same code under one cluster fails", func(t *testing.T) {
		bu := &businessunit.BusinessUnit{ClusterID: 1, Code: "BKK01", Name: "Duplicate"}
		assert.Error(t, repo.Create(ctx, bu))
	})

	t.Run("same code under another cluster is allowed", func(t *testing.T) {
		bu := &businessunit.BusinessUnit{ClusterID: 2, Code: "BKK01", Name: "Other Cluster"}
		assert.NoError(t, repo.Create(ctx, bu))
	})
}

func TestBusinessUnitRepository_GetByCode(t *testing.T) {
	db := setupTestDB(t)
	repo := NewBusinessUnitRepository(db, testLogger())
	ctx := context.Background()

	created := createTestBusinessUnit(t, repo, 1, "HKT01", "Phuket Beach")

	found, err := repo.GetByCode(ctx, 1, "HKT01")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, created.ID, found.ID)

	missing, err := repo.GetByCode(ctx, 2, "HKT01")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestBusinessUnitRepository_List(t *testing.T) {
	db := setupTestDB(t)
	repo := NewBusinessUnitRepository(db, testLogger())
	ctx := context.Background()

	createTestBusinessUnit(t, repo, 1, "BKK01", "Bangkok Riverside")
	createTestBusinessUnit(t, repo, 1, "HKT01", "Phuket Beach")
	createTestBusinessUnit(t, repo, 2, "CNX01", "Chiang Mai Hills")

	t.Run("filter by cluster", func(t *testing.T) {
		p := query.New()
		p.Filter = map[string]any{"cluster_id": 1}
		items, total, err := repo.List(ctx, p)
		require.NoError(t, err)
		assert.Equal(t, int64(2), total)
		assert.Len(t, items, 2)
	})

	t.Run("advance like condition", func(t *testing.T) {
		p := query.New()
		p.Advance = []query.AdvanceCondition{{Field: "name", Operator: "like", Value: "Beach"}}
		items, total, err := repo.List(ctx, p)
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
		require.Len(t, items, 1)
		assert.Equal(t, "HKT01", items[0].Code)
	})

	t.Run("fetch all sentinel returns everything", func(t *testing.T) {
		p := query.New()
		p.Perpage = -1
		items, total, err := repo.List(ctx, p)
		require.NoError(t, err)
		assert.Equal(t, int64(3), total)
		assert.Len(t, items, 3)
	})
}

func TestBusinessUnitRepository_HQExists(t *testing.T) {
	db := setupTestDB(t)
	repo := NewBusinessUnitRepository(db, testLogger())
	ctx := context.Background()

	hq := &businessunit.BusinessUnit{ClusterID: 1, Code: "HQ", Name: "Head Office", IsHQ: true}
	require.NoError(t, repo.Create(ctx, hq))
	createTestBusinessUnit(t, repo, 1, "BKK01", "Bangkok Riverside")

	exists, err := repo.HQExists(ctx, 1, 0)
	require.NoError(t, err)
	assert.True(t, exists)

	// The HQ itself is excluded when checking an update to it.
	exists, err = repo.HQExists(ctx, 1, hq.ID)
	require.NoError(t, err)
	assert.False(t, exists)

	exists, err = repo.HQExists(ctx, 2, 0)
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestBusinessUnitRepository_DefaultUser(t *testing.T) {
	db := setupTestDB(t)
	repo := NewBusinessUnitRepository(db, testLogger())
	ctx := context.Background()

	first := createTestBusinessUnit(t, repo, 1, "BKK01", "Bangkok Riverside")
	second := createTestBusinessUnit(t, repo, 1, "HKT01", "Phuket Beach")

	require.NoError(t, repo.AssignUser(ctx, &businessunit.UserAssignment{
		BusinessUnitID: first.ID, UserID: 7, Role: "manager", IsDefault: true, IsActive: true,
	}))
	require.NoError(t, repo.AssignUser(ctx, &businessunit.UserAssignment{
		BusinessUnitID: second.ID, UserID: 7, Role: "manager", IsActive: true,
	}))

	t.Run("setting a new default clears the previous one", func(t *testing.T) {
		require.NoError(t, repo.SetDefaultUser(ctx, second.ID, 7))

		firstUsers, _, err := repo.ListUsers(ctx, first.ID, query.New())
		require.NoError(t, err)
		require.Len(t, firstUsers, 1)
		assert.False(t, firstUsers[0].IsDefault)

		secondUsers, _, err := repo.ListUsers(ctx, second.ID, query.New())
		require.NoError(t, err)
		require.Len(t, secondUsers, 1)
		assert.True(t, secondUsers[0].IsDefault)
	})

	t.Run("missing assignment errors", func(t *testing.T) {
		assert.Error(t, repo.SetDefaultUser(ctx, first.ID, 9999))
	})
}
