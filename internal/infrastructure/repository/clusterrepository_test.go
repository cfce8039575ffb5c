package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carmen-hq/carmen/internal/domain/cluster"
	"github.com/carmen-hq/carmen/internal/shared/query"
)

func createTestCluster(t *testing.T, repo cluster.Repository, code, name string) *cluster.Cluster {
	t.Helper()
	c := &cluster.Cluster{Code: code, Name: name, IsActive: true, CreatedBy: 1}
	require.NoError(t, repo.Create(context.Background(), c))
	return c
}

func TestClusterRepository_Create(t *testing.T) {
	db := setupTestDB(t)
	repo := NewClusterRepository(db, testLogger())
	ctx := context.Background()

	t.Run("create cluster successfully", func(t *testing.T) {
		c := &cluster.Cluster{Code: "APAC", Name: "Asia Pacific", IsActive: true}
		err := repo.Create(ctx, c)
		assert.NoError(t, err)
		assert.NotZero(t, c.ID)
	})

	t.Run("duplicate code should fail", func(t *testing.T) {
		c := &cluster.Cluster{Code: "APAC", Name: "Duplicate"}
		err := repo.Create(ctx, c)
		assert.Error(t, err)
	})
}

func TestClusterRepository_GetByCode(t *testing.T) {
	db := setupTestDB(t)
	repo := NewClusterRepository(db, testLogger())
	ctx := context.Background()

	created := createTestCluster(t, repo, "EMEA", "Europe")

	found, err := repo.GetByCode(ctx, "EMEA")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, created.ID, found.ID)
	assert.Equal(t, "Europe", found.Name)

	missing, err := repo.GetByCode(ctx, "NOPE")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestClusterRepository_List(t *testing.T) {
	db := setupTestDB(t)
	repo := NewClusterRepository(db, testLogger())
	ctx := context.Background()

	createTestCluster(t, repo, "APAC", "Asia Pacific")
	createTestCluster(t, repo, "EMEA", "Europe")
	createTestCluster(t, repo, "AMER", "Americas")

	t.Run("paginates and counts the full set", func(t *testing.T) {
		p := query.New()
		p.Perpage = 2
		items, total, err := repo.List(ctx, p)
		require.NoError(t, err)
		assert.Equal(t, int64(3), total)
		assert.Len(t, items, 2)
	})

	t.Run("search narrows by whitelisted fields", func(t *testing.T) {
		p := query.New()
		p.Search = "Europe"
		p.SearchFields = cluster.DefaultSearchFields
		items, total, err := repo.List(ctx, p)
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
		require.Len(t, items, 1)
		assert.Equal(t, "EMEA", items[0].Code)
	})

	t.Run("filter on unknown column errors", func(t *testing.T) {
		p := query.New()
		p.Filter = map[string]any{"password_hash": "x"}
		_, _, err := repo.List(ctx, p)
		assert.Error(t, err)
	})

	t.Run("sort ascending by code", func(t *testing.T) {
		p := query.New()
		p.Sort = "code:asc"
		items, _, err := repo.List(ctx, p)
		require.NoError(t, err)
		require.Len(t, items, 3)
		assert.Equal(t, "AMER", items[0].Code)
		assert.Equal(t, "EMEA", items[2].Code)
	})
}

func TestClusterRepository_Update(t *testing.T) {
	db := setupTestDB(t)
	repo := NewClusterRepository(db, testLogger())
	ctx := context.Background()

	c := createTestCluster(t, repo, "APAC", "Asia Pacific")
	c.Name = "Asia Pacific Region"
	c.IsActive = false
	require.NoError(t, repo.Update(ctx, c))

	found, err := repo.GetByID(ctx, c.ID)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, "Asia Pacific Region", found.Name)
	assert.False(t, found.IsActive)
}

func TestClusterRepository_Delete(t *testing.T) {
	db := setupTestDB(t)
	repo := NewClusterRepository(db, testLogger())
	ctx := context.Background()

	c := createTestCluster(t, repo, "TEMP", "Temporary")
	require.NoError(t, repo.Delete(ctx, c.ID))

	found, err := repo.GetByID(ctx, c.ID)
	require.NoError(t, err)
	assert.Nil(t, found)

	assert.Error(t, repo.Delete(ctx, 9999))
}

func TestClusterRepository_UserAssignments(t *testing.T) {
	db := setupTestDB(t)
	repo := NewClusterRepository(db, testLogger())
	ctx := context.Background()

	c := createTestCluster(t, repo, "APAC", "Asia Pacific")

	a := &cluster.UserAssignment{ClusterID: c.ID, UserID: 42, Role: "admin", IsActive: true}
	require.NoError(t, repo.AssignUser(ctx, a))

	assignments, total, err := repo.ListUsers(ctx, c.ID, query.New())
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, assignments, 1)
	assert.Equal(t, uint(42), assignments[0].UserID)
	assert.Equal(t, "admin", assignments[0].Role)

	require.NoError(t, repo.RemoveUser(ctx, c.ID, 42))
	_, total, err = repo.ListUsers(ctx, c.ID, query.New())
	require.NoError(t, err)
	assert.Equal(t, int64(0), total)
}
