package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ridvanpektas1990-bit/amz/internal/domain"
)

type fakeConnRepo struct {
	conns map[string]*domain.Connection
}

func newFakeConnRepo() *fakeConnRepo {
	return &fakeConnRepo{conns: make(map[string]*domain.Connection)}
}

func (f *fakeConnRepo) SaveConnection(ctx context.Context, conn *domain.Connection) error {
	f.conns[conn.TenantID+"|"+conn.Region] = conn
	return nil
}

func (f *fakeConnRepo) GetConnection(ctx context.Context, tenantID, region string) (*domain.Connection, error) {
	return f.conns[tenantID+"|"+region], nil
}

func (f *fakeConnRepo) GetConnections(ctx context.Context, tenantID string) ([]*domain.Connection, error) {
	var out []*domain.Connection
	for _, conn := range f.conns {
		if conn.TenantID == tenantID {
			out = append(out, conn)
		}
	}
	return out, nil
}

func TestConnectNormalizesAndStores(t *testing.T) {
	repo := newFakeConnRepo()
	svc := NewConnectionService(repo)

	err := svc.Connect(context.Background(), &domain.Connection{
		TenantID:     "t1",
		Region:       " eu ",
		SellerID:     "A1B2",
		RefreshToken: "Atzr|token",
	})
	require.NoError(t, err)

	stored, err := svc.Resolve(context.Background(), "t1", "EU")
	require.NoError(t, err)
	assert.Equal(t, "EU", stored.Region)
	assert.Equal(t, "Atzr|token", stored.RefreshToken)
}

func TestConnectRejectsBadInput(t *testing.T) {
	svc := NewConnectionService(newFakeConnRepo())

	err := svc.Connect(context.Background(), &domain.Connection{
		TenantID: "t1", Region: "XX", RefreshToken: "tok",
	})
	assert.Error(t, err)

	err = svc.Connect(context.Background(), &domain.Connection{
		TenantID: "t1", Region: "EU",
	})
	assert.Error(t, err)

	err = svc.Connect(context.Background(), &domain.Connection{
		Region: "EU", RefreshToken: "tok",
	})
	assert.Error(t, err)
}

func TestResolveMissingConnection(t *testing.T) {
	svc := NewConnectionService(newFakeConnRepo())

	_, err := svc.Resolve(context.Background(), "t1", "EU")
	assert.ErrorIs(t, err, ErrNoConnection)
}
