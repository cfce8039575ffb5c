package usecases

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carmen-hq/carmen/internal/application/businessunit/dto"
	domainBU "github.com/carmen-hq/carmen/internal/domain/businessunit"
	domainCluster "github.com/carmen-hq/carmen/internal/domain/cluster"
	"github.com/carmen-hq/carmen/internal/shared/errors"
	"github.com/carmen-hq/carmen/internal/shared/logger"
	"github.com/carmen-hq/carmen/internal/shared/query"
)

type fakeBURepo struct {
	units  []*domainBU.BusinessUnit
	nextID uint
}

func newFakeBURepo(units ...*domainBU.BusinessUnit) *fakeBURepo {
	return &fakeBURepo{units: units, nextID: 100}
}

func (r *fakeBURepo) Create(ctx context.Context, bu *domainBU.BusinessUnit) error {
	r.nextID++
	bu.ID = r.nextID
	r.units = append(r.units, bu)
	return nil
}

func (r *fakeBURepo) GetByID(ctx context.Context, id uint) (*domainBU.BusinessUnit, error) {
	for _, bu := range r.units {
		if bu.ID == id {
			return bu, nil
		}
	}
	return nil, nil
}

func (r *fakeBURepo) GetByCode(ctx context.Context, clusterID uint, code string) (*domainBU.BusinessUnit, error) {
	for _, bu := range r.units {
		if bu.ClusterID == clusterID && bu.Code == code {
			return bu, nil
		}
	}
	return nil, nil
}

func (r *fakeBURepo) List(ctx context.Context, p query.Paginate) ([]*domainBU.BusinessUnit, int64, error) {
	return r.units, int64(len(r.units)), nil
}

func (r *fakeBURepo) Update(ctx context.Context, bu *domainBU.BusinessUnit) error { return nil }
func (r *fakeBURepo) Delete(ctx context.Context, id uint) error                   { return nil }

func (r *fakeBURepo) HQExists(ctx context.Context, clusterID, excludeID uint) (bool, error) {
	for _, bu := range r.units {
		if bu.ClusterID == clusterID && bu.IsHQ && bu.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeBURepo) ListUsers(ctx context.Context, businessUnitID uint, p query.Paginate) ([]*domainBU.UserAssignment, int64, error) {
	return nil, 0, nil
}
func (r *fakeBURepo) AssignUser(ctx context.Context, a *domainBU.UserAssignment) error { return nil }
func (r *fakeBURepo) RemoveUser(ctx context.Context, businessUnitID, userID uint) error {
	return nil
}
func (r *fakeBURepo) SetDefaultUser(ctx context.Context, businessUnitID, userID uint) error {
	return nil
}

type stubClusterRepo struct {
	clusters map[uint]*domainCluster.Cluster
}

func (r *stubClusterRepo) Create(ctx context.Context, c *domainCluster.Cluster) error { return nil }
func (r *stubClusterRepo) GetByID(ctx context.Context, id uint) (*domainCluster.Cluster, error) {
	return r.clusters[id], nil
}
func (r *stubClusterRepo) GetByCode(ctx context.Context, code string) (*domainCluster.Cluster, error) {
	return nil, nil
}
func (r *stubClusterRepo) List(ctx context.Context, p query.Paginate) ([]*domainCluster.Cluster, int64, error) {
	return nil, 0, nil
}
func (r *stubClusterRepo) Update(ctx context.Context, c *domainCluster.Cluster) error { return nil }
func (r *stubClusterRepo) Delete(ctx context.Context, id uint) error                  { return nil }
func (r *stubClusterRepo) CountBusinessUnits(ctx context.Context, clusterID uint) (int64, error) {
	return 0, nil
}
func (r *stubClusterRepo) ListUsers(ctx context.Context, clusterID uint, p query.Paginate) ([]*domainCluster.UserAssignment, int64, error) {
	return nil, 0, nil
}
func (r *stubClusterRepo) AssignUser(ctx context.Context, a *domainCluster.UserAssignment) error {
	return nil
}
func (r *stubClusterRepo) RemoveUser(ctx context.Context, clusterID, userID uint) error { return nil }

func quietLogger() logger.Interface {
	return logger.NewLoggerWithSlog(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func oneClusterRepo() *stubClusterRepo {
	return &stubClusterRepo{clusters: map[uint]*domainCluster.Cluster{
		1: {ID: 1, Code: "APAC", Name: "Asia Pacific", IsActive: true},
	}}
}

func numberFormatField(t *testing.T, raw string) dto.NumberFormatField {
	t.Helper()
	var f dto.NumberFormatField
	require.NoError(t, json.Unmarshal([]byte(raw), &f))
	return f
}

func TestCreateBusinessUnitUseCase_Execute(t *testing.T) {
	t.Run("accepts string-encoded number formats", func(t *testing.T) {
		repo := newFakeBURepo()
		uc := NewCreateBusinessUnitUseCase(repo, oneClusterRepo(), quietLogger())

		resp, err := uc.Execute(context.Background(), dto.CreateBusinessUnitRequest{
			ClusterID:    1,
			Code:         "bkk01",
			Name:         "Bangkok Riverside",
			AmountFormat: numberFormatField(t, `"{\"locales\":\"th-TH\",\"minimumFractionDigits\":2}"`),
		}, 1)
		require.NoError(t, err)
		assert.Equal(t, "BKK01", resp.Code)
		require.NotNil(t, resp.AmountFormat)
		assert.Equal(t, "th-TH", resp.AmountFormat.Locales)
		assert.Equal(t, "fifo", resp.CalculationMethod)
	})

	t.Run("drops config entries without key or label", func(t *testing.T) {
		repo := newFakeBURepo()
		uc := NewCreateBusinessUnitUseCase(repo, oneClusterRepo(), quietLogger())

		resp, err := uc.Execute(context.Background(), dto.CreateBusinessUnitRequest{
			ClusterID: 1,
			Code:      "BKK01",
			Name:      "Bangkok Riverside",
			Config: []domainBU.ConfigEntry{
				{Key: "checkout_time", Label: "Checkout Time", Value: "12:00"},
				{Key: "", Label: "Orphan", Value: "x"},
				{Key: "orphan", Label: "", Value: "y"},
			},
		}, 1)
		require.NoError(t, err)
		require.Len(t, resp.Config, 1)
		assert.Equal(t, "checkout_time", resp.Config[0].Key)
	})

	t.Run("rejects second HQ in a cluster", func(t *testing.T) {
		repo := newFakeBURepo(&domainBU.BusinessUnit{
			ID: 1, ClusterID: 1, Code: "HQ", IsHQ: true, CalculationMethod: "fifo",
		})
		uc := NewCreateBusinessUnitUseCase(repo, oneClusterRepo(), quietLogger())

		_, err := uc.Execute(context.Background(), dto.CreateBusinessUnitRequest{
			ClusterID: 1,
			Code:      "HQ2",
			Name:      "Second HQ",
			IsHQ:      true,
		}, 1)
		require.Error(t, err)
		appErr := errors.GetAppError(err)
		require.NotNil(t, appErr)
		assert.Equal(t, errors.ErrorTypeUnprocessable, appErr.Type)
	})

	t.Run("rejects duplicated code inside the cluster", func(t *testing.T) {
		repo := newFakeBURepo(&domainBU.BusinessUnit{
			ID: 1, ClusterID: 1, Code: "BKK01", CalculationMethod: "fifo",
		})
		uc := NewCreateBusinessUnitUseCase(repo, oneClusterRepo(), quietLogger())

		_, err := uc.Execute(context.Background(), dto.CreateBusinessUnitRequest{
			ClusterID: 1,
			Code:      "BKK01",
			Name:      "Duplicate",
		}, 1)
		assert.True(t, errors.IsConflictError(err))
	})

	t.Run("rejects bad locales tag", func(t *testing.T) {
		uc := NewCreateBusinessUnitUseCase(newFakeBURepo(), oneClusterRepo(), quietLogger())

		_, err := uc.Execute(context.Background(), dto.CreateBusinessUnitRequest{
			ClusterID:    1,
			Code:         "BKK01",
			Name:         "Bangkok Riverside",
			AmountFormat: numberFormatField(t, `{"locales":"!!bad!!"}`),
		}, 1)
		assert.True(t, errors.IsValidationError(err))
	})

	t.Run("rejects unknown calculation method", func(t *testing.T) {
		uc := NewCreateBusinessUnitUseCase(newFakeBURepo(), oneClusterRepo(), quietLogger())

		_, err := uc.Execute(context.Background(), dto.CreateBusinessUnitRequest{
			ClusterID:         1,
			Code:              "BKK01",
			Name:              "Bangkok Riverside",
			CalculationMethod: "lifo",
		}, 1)
		assert.True(t, errors.IsValidationError(err))
	})

	t.Run("unknown cluster yields not found", func(t *testing.T) {
		uc := NewCreateBusinessUnitUseCase(newFakeBURepo(), oneClusterRepo(), quietLogger())

		_, err := uc.Execute(context.Background(), dto.CreateBusinessUnitRequest{
			ClusterID: 9,
			Code:      "BKK01",
			Name:      "Bangkok Riverside",
		}, 1)
		assert.True(t, errors.IsNotFoundError(err))
	})
}

func TestUpdateBusinessUnitUseCase_Execute(t *testing.T) {
	existing := func() *domainBU.BusinessUnit {
		return &domainBU.BusinessUnit{
			ID:                1,
			ClusterID:         1,
			Code:              "BKK01",
			Name:              "Bangkok Riverside",
			IsActive:          true,
			CalculationMethod: "fifo",
			DBConnection: &domainBU.DBConnection{
				Driver:   "mysql",
				Host:     "reports.internal",
				Database: "bkk01",
				Password: "s3cret",
			},
		}
	}

	t.Run("masked password round-trip keeps stored secret", func(t *testing.T) {
		repo := newFakeBURepo(existing())
		uc := NewUpdateBusinessUnitUseCase(repo, quietLogger())

		_, err := uc.Execute(context.Background(), 1, dto.UpdateBusinessUnitRequest{
			DBConnection: &domainBU.DBConnection{
				Driver:   "mysql",
				Host:     "reports.internal",
				Database: "bkk01",
				Password: "********",
			},
		}, 1)
		require.NoError(t, err)

		stored, err := repo.GetByID(context.Background(), 1)
		require.NoError(t, err)
		assert.Equal(t, "s3cret", stored.DBConnection.Password)
	})

	t.Run("new password replaces the stored one", func(t *testing.T) {
		repo := newFakeBURepo(existing())
		uc := NewUpdateBusinessUnitUseCase(repo, quietLogger())

		_, err := uc.Execute(context.Background(), 1, dto.UpdateBusinessUnitRequest{
			DBConnection: &domainBU.DBConnection{
				Driver:   "mysql",
				Host:     "reports.internal",
				Database: "bkk01",
				Password: "fresh-secret",
			},
		}, 1)
		require.NoError(t, err)

		stored, err := repo.GetByID(context.Background(), 1)
		require.NoError(t, err)
		assert.Equal(t, "fresh-secret", stored.DBConnection.Password)
	})

	t.Run("response always masks the password", func(t *testing.T) {
		repo := newFakeBURepo(existing())
		uc := NewUpdateBusinessUnitUseCase(repo, quietLogger())

		name := "Bangkok Riverside Resort"
		resp, err := uc.Execute(context.Background(), 1, dto.UpdateBusinessUnitRequest{Name: &name}, 1)
		require.NoError(t, err)
		require.NotNil(t, resp.DBConnection)
		assert.Equal(t, "********", resp.DBConnection.Password)
	})

	t.Run("promoting to HQ fails when the cluster has one", func(t *testing.T) {
		hq := &domainBU.BusinessUnit{ID: 2, ClusterID: 1, Code: "HQ", IsHQ: true, CalculationMethod: "fifo"}
		repo := newFakeBURepo(existing(), hq)
		uc := NewUpdateBusinessUnitUseCase(repo, quietLogger())

		isHQ := true
		_, err := uc.Execute(context.Background(), 1, dto.UpdateBusinessUnitRequest{IsHQ: &isHQ}, 1)
		require.Error(t, err)
		appErr := errors.GetAppError(err)
		require.NotNil(t, appErr)
		assert.Equal(t, errors.ErrorTypeUnprocessable, appErr.Type)
	})
}
