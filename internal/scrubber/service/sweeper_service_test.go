package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/anthanhphan/go-image-scrubber/internal/scrubber/domain"
	"github.com/anthanhphan/go-image-scrubber/internal/scrubber/service/mocks"
	"go.uber.org/mock/gomock"
)

func TestSweeperService_Sweep(t *testing.T) {
	now := time.Now()
	expiredOriginal := domain.StoredObject{
		ID:        "11111111111111111111111111111111",
		Namespace: domain.NamespaceOriginal,
		Size:      100,
		CreatedAt: now.Add(-2 * time.Hour),
	}
	freshOriginal := domain.StoredObject{
		ID:        "22222222222222222222222222222222",
		Namespace: domain.NamespaceOriginal,
		Size:      50,
		CreatedAt: now.Add(-time.Minute),
	}
	expiredDerived := domain.StoredObject{
		ID:        "11111111111111111111111111111111",
		Namespace: domain.NamespaceDerived,
		Size:      40,
		CreatedAt: now.Add(-2 * time.Hour),
	}

	type mockSetup func(store *mocks.MockObjectStore)

	tests := []struct {
		name          string
		setup         mockSetup
		wantDeleted   int64
		wantReclaimed int64
	}{
		{
			name: "ReclaimsOnlyExpiredObjects",
			setup: func(store *mocks.MockObjectStore) {
				store.EXPECT().ListObjects(gomock.Any(), domain.NamespaceOriginal).
					Return([]domain.StoredObject{expiredOriginal, freshOriginal}, nil)
				store.EXPECT().ListObjects(gomock.Any(), domain.NamespaceDerived).
					Return([]domain.StoredObject{expiredDerived}, nil)

				store.EXPECT().DeleteObject(gomock.Any(), expiredOriginal.ID, domain.NamespaceOriginal).Return(nil)
				store.EXPECT().DeleteObject(gomock.Any(), expiredDerived.ID, domain.NamespaceDerived).Return(nil)
			},
			wantDeleted:   2,
			wantReclaimed: 140,
		},
		{
			name: "DeleteFailureSkipsObjectAndContinues",
			setup: func(store *mocks.MockObjectStore) {
				store.EXPECT().ListObjects(gomock.Any(), domain.NamespaceOriginal).
					Return([]domain.StoredObject{expiredOriginal}, nil)
				store.EXPECT().ListObjects(gomock.Any(), domain.NamespaceDerived).
					Return([]domain.StoredObject{expiredDerived}, nil)

				store.EXPECT().DeleteObject(gomock.Any(), expiredOriginal.ID, domain.NamespaceOriginal).
					Return(errors.New("io error"))
				store.EXPECT().DeleteObject(gomock.Any(), expiredDerived.ID, domain.NamespaceDerived).Return(nil)
			},
			wantDeleted:   1,
			wantReclaimed: 40,
		},
		{
			name: "ListFailureOnOneNamespaceDoesNotAbortPass",
			setup: func(store *mocks.MockObjectStore) {
				store.EXPECT().ListObjects(gomock.Any(), domain.NamespaceOriginal).
					Return(nil, errors.New("io error"))
				store.EXPECT().ListObjects(gomock.Any(), domain.NamespaceDerived).
					Return([]domain.StoredObject{expiredDerived}, nil)

				store.EXPECT().DeleteObject(gomock.Any(), expiredDerived.ID, domain.NamespaceDerived).Return(nil)
			},
			wantDeleted:   1,
			wantReclaimed: 40,
		},
		{
			name: "NothingExpired",
			setup: func(store *mocks.MockObjectStore) {
				store.EXPECT().ListObjects(gomock.Any(), domain.NamespaceOriginal).
					Return([]domain.StoredObject{freshOriginal}, nil)
				store.EXPECT().ListObjects(gomock.Any(), domain.NamespaceDerived).
					Return(nil, nil)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockStore := mocks.NewMockObjectStore(ctrl)
			if tt.setup != nil {
				tt.setup(mockStore)
			}

			core := newTestCore(mockStore, mocks.NewMockImageCodec(ctrl), 1024)
			svc := newSweeperService(core)

			deleted, reclaimed := svc.sweep(context.Background())
			if deleted != tt.wantDeleted {
				t.Errorf("sweep() deleted = %d, want %d", deleted, tt.wantDeleted)
			}
			if reclaimed != tt.wantReclaimed {
				t.Errorf("sweep() reclaimed = %d, want %d", reclaimed, tt.wantReclaimed)
			}
		})
	}
}
