package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/yamori/ammoledger/internal/domain"
	"github.com/yamori/ammoledger/internal/usecase"
	"github.com/yamori/ammoledger/internal/usecase/genmocks"
)

func TestAuditListClampsLimit(t *testing.T) {
	tests := []struct {
		name      string
		limit     int
		wantLimit int
	}{
		{"zero limit defaults", 0, usecase.DefaultPageSize},
		{"negative limit defaults", -1, usecase.DefaultPageSize},
		{"within bounds passes through", 25, 25},
		{"oversized limit clamps", 10000, usecase.MaxPageSize},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			audit := genmocks.NewMockAuditRepository(ctrl)
			uc := usecase.NewAuditUseCase(audit)

			audit.EXPECT().
				List(gomock.Any(), "owner-1", gomock.Any()).
				DoAndReturn(func(ctx context.Context, ownerID string, filter domain.AuditFilter) ([]*domain.AuditLog, error) {
					assert.Equal(t, tt.wantLimit, filter.Limit)
					return nil, nil
				})

			_, err := uc.List(context.Background(), "owner-1", domain.AuditFilter{Limit: tt.limit})
			require.NoError(t, err)
		})
	}
}

func TestAuditListPassesFilter(t *testing.T) {
	ctrl := gomock.NewController(t)
	audit := genmocks.NewMockAuditRepository(ctrl)
	uc := usecase.NewAuditUseCase(audit)

	want := []*domain.AuditLog{{ID: "log-1", OwnerID: "owner-1", Action: domain.AuditActionEventAppend}}

	audit.EXPECT().
		List(gomock.Any(), "owner-1", gomock.Any()).
		DoAndReturn(func(ctx context.Context, ownerID string, filter domain.AuditFilter) ([]*domain.AuditLog, error) {
			assert.Equal(t, domain.AuditActionEventAppend, filter.Action)
			assert.Equal(t, domain.ResourceTypeEvent, filter.ResourceType)
			return want, nil
		})

	got, err := uc.List(context.Background(), "owner-1", domain.AuditFilter{
		Action:       domain.AuditActionEventAppend,
		ResourceType: domain.ResourceTypeEvent,
		Limit:        10,
	})
	require.NoError(t, err)
	assert.Equal(t, want, got)
}
