package usecases

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carmen-hq/carmen/internal/application/cluster/dto"
	domainCluster "github.com/carmen-hq/carmen/internal/domain/cluster"
	"github.com/carmen-hq/carmen/internal/shared/errors"
	"github.com/carmen-hq/carmen/internal/shared/logger"
	"github.com/carmen-hq/carmen/internal/shared/query"
)

type fakeClusterRepo struct {
	clusters []*domainCluster.Cluster
	buCounts map[uint]int64
	deleted  []uint
	nextID   uint
}

func newFakeClusterRepo(clusters ...*domainCluster.Cluster) *fakeClusterRepo {
	repo := &fakeClusterRepo{buCounts: map[uint]int64{}, nextID: 100}
	repo.clusters = clusters
	return repo
}

func (r *fakeClusterRepo) Create(ctx context.Context, c *domainCluster.Cluster) error {
	r.nextID++
	c.ID = r.nextID
	r.clusters = append(r.clusters, c)
	return nil
}

func (r *fakeClusterRepo) GetByID(ctx context.Context, id uint) (*domainCluster.Cluster, error) {
	for _, c := range r.clusters {
		if c.ID == id {
			return c, nil
		}
	}
	return nil, nil
}

func (r *fakeClusterRepo) GetByCode(ctx context.Context, code string) (*domainCluster.Cluster, error) {
	for _, c := range r.clusters {
		if c.Code == code {
			return c, nil
		}
	}
	return nil, nil
}

func (r *fakeClusterRepo) List(ctx context.Context, p query.Paginate) ([]*domainCluster.Cluster, int64, error) {
	return r.clusters, int64(len(r.clusters)), nil
}

func (r *fakeClusterRepo) Update(ctx context.Context, c *domainCluster.Cluster) error { return nil }

func (r *fakeClusterRepo) Delete(ctx context.Context, id uint) error {
	r.deleted = append(r.deleted, id)
	return nil
}

func (r *fakeClusterRepo) CountBusinessUnits(ctx context.Context, clusterID uint) (int64, error) {
	return r.buCounts[clusterID], nil
}

func (r *fakeClusterRepo) ListUsers(ctx context.Context, clusterID uint, p query.Paginate) ([]*domainCluster.UserAssignment, int64, error) {
	return nil, 0, nil
}

func (r *fakeClusterRepo) AssignUser(ctx context.Context, a *domainCluster.UserAssignment) error {
	return nil
}

func (r *fakeClusterRepo) RemoveUser(ctx context.Context, clusterID, userID uint) error { return nil }

func quietLogger() logger.Interface {
	return logger.NewLoggerWithSlog(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestCreateClusterUseCase_Execute(t *testing.T) {
	t.Run("creates cluster with uppercased code", func(t *testing.T) {
		repo := newFakeClusterRepo()
		uc := NewCreateClusterUseCase(repo, quietLogger())

		resp, err := uc.Execute(context.Background(), dto.CreateClusterRequest{
			Code: "apac",
			Name: "Asia Pacific",
		}, 1)
		require.NoError(t, err)
		assert.Equal(t, "APAC", resp.Code)
		assert.True(t, resp.IsActive)
	})

	t.Run("rejects invalid code", func(t *testing.T) {
		uc := NewCreateClusterUseCase(newFakeClusterRepo(), quietLogger())

		_, err := uc.Execute(context.Background(), dto.CreateClusterRequest{
			Code: "bad code!",
			Name: "Nope",
		}, 1)
		require.Error(t, err)
		assert.True(t, errors.IsValidationError(err))
	})

	t.Run("rejects duplicate code", func(t *testing.T) {
		repo := newFakeClusterRepo(&domainCluster.Cluster{ID: 1, Code: "APAC", Name: "Existing"})
		uc := NewCreateClusterUseCase(repo, quietLogger())

		_, err := uc.Execute(context.Background(), dto.CreateClusterRequest{
			Code: "APAC",
			Name: "Duplicate",
		}, 1)
		require.Error(t, err)
		assert.True(t, errors.IsConflictError(err))
	})
}

func TestDeleteClusterUseCase_Execute(t *testing.T) {
	t.Run("refuses while business units remain", func(t *testing.T) {
		repo := newFakeClusterRepo(&domainCluster.Cluster{ID: 1, Code: "APAC"})
		repo.buCounts[1] = 3
		uc := NewDeleteClusterUseCase(repo, quietLogger())

		err := uc.Execute(context.Background(), 1)
		require.Error(t, err)

		appErr := errors.GetAppError(err)
		require.NotNil(t, appErr)
		assert.Equal(t, errors.ErrorTypeUnprocessable, appErr.Type)
		assert.Empty(t, repo.deleted)
	})

	t.Run("deletes an empty cluster", func(t *testing.T) {
		repo := newFakeClusterRepo(&domainCluster.Cluster{ID: 1, Code: "APAC"})
		uc := NewDeleteClusterUseCase(repo, quietLogger())

		require.NoError(t, uc.Execute(context.Background(), 1))
		assert.Equal(t, []uint{1}, repo.deleted)
	})

	t.Run("missing cluster yields not found", func(t *testing.T) {
		uc := NewDeleteClusterUseCase(newFakeClusterRepo(), quietLogger())

		err := uc.Execute(context.Background(), 42)
		assert.True(t, errors.IsNotFoundError(err))
	})
}

func TestUpdateClusterUseCase_Execute(t *testing.T) {
	repo := newFakeClusterRepo(&domainCluster.Cluster{ID: 1, Code: "APAC", Name: "Asia Pacific", IsActive: true})
	uc := NewUpdateClusterUseCase(repo, quietLogger())

	newName := "Asia Pacific Region"
	inactive := false
	resp, err := uc.Execute(context.Background(), 1, dto.UpdateClusterRequest{
		Name:     &newName,
		IsActive: &inactive,
	}, 9)
	require.NoError(t, err)
	assert.Equal(t, "Asia Pacific Region", resp.Name)
	assert.False(t, resp.IsActive)

	empty := "  "
	_, err = uc.Execute(context.Background(), 1, dto.UpdateClusterRequest{Name: &empty}, 9)
	assert.True(t, errors.IsValidationError(err))
}
