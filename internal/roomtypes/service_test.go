package roomtypes

import (
	"context"
	"errors"
	"testing"
	"time"

	"gorm.io/gorm"
)

type mockRepository struct {
	GetByCategoryFunc    func(ctx context.Context, category string) (*RoomTypeConfig, error)
	GetAllFunc           func(ctx context.Context) ([]RoomTypeConfig, error)
	UpsertFunc           func(ctx context.Context, config *RoomTypeConfig) error
	DeleteByCategoryFunc func(ctx context.Context, category string) error
}

func (m *mockRepository) GetByCategory(ctx context.Context, category string) (*RoomTypeConfig, error) {
	return m.GetByCategoryFunc(ctx, category)
}

func (m *mockRepository) GetAll(ctx context.Context) ([]RoomTypeConfig, error) {
	if m.GetAllFunc != nil {
		return m.GetAllFunc(ctx)
	}
	return nil, nil
}

func (m *mockRepository) Upsert(ctx context.Context, config *RoomTypeConfig) error {
	if m.UpsertFunc != nil {
		return m.UpsertFunc(ctx, config)
	}
	return nil
}

func (m *mockRepository) DeleteByCategory(ctx context.Context, category string) error {
	if m.DeleteByCategoryFunc != nil {
		return m.DeleteByCategoryFunc(ctx, category)
	}
	return nil
}

func missingRepo() *mockRepository {
	return &mockRepository{
		GetByCategoryFunc: func(ctx context.Context, category string) (*RoomTypeConfig, error) {
			return nil, gorm.ErrRecordNotFound
		},
	}
}

func TestResolvePersistedRowWins(t *testing.T) {
	repo := &mockRepository{
		GetByCategoryFunc: func(ctx context.Context, category string) (*RoomTypeConfig, error) {
			return &RoomTypeConfig{
				Category:      CategoryStandard,
				Capacity:      7,
				PreBufferMin:  15,
				PostBufferMin: 45,
			}, nil
		},
	}

	svc := NewService(repo, DefaultPolicies())

	policy, err := svc.Resolve(context.Background(), CategoryStandard)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if policy.Capacity != 7 {
		t.Errorf("capacity = %d, want 7", policy.Capacity)
	}
	if policy.PreBuffer != 15*time.Minute {
		t.Errorf("pre buffer = %v, want 15m", policy.PreBuffer)
	}
	if policy.PostBuffer != 45*time.Minute {
		t.Errorf("post buffer = %v, want 45m", policy.PostBuffer)
	}
}

func TestResolveMissingConfigFallsBackToDefaults(t *testing.T) {
	svc := NewService(missingRepo(), DefaultPolicies())

	tests := []struct {
		category     string
		wantCapacity int
	}{
		{CategoryStandard, 23},
		{CategoryFamily, 1},
		// Unknown categories resolve through the STANDARD fallback
		{"PENTHOUSE", 23},
	}

	for _, tt := range tests {
		t.Run(tt.category, func(t *testing.T) {
			policy, err := svc.Resolve(context.Background(), tt.category)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if policy.Capacity != tt.wantCapacity {
				t.Errorf("capacity = %d, want %d", policy.Capacity, tt.wantCapacity)
			}
			if policy.PreBuffer != 0 || policy.PostBuffer != 0 {
				t.Errorf("default buffers = %v/%v, want zero", policy.PreBuffer, policy.PostBuffer)
			}
		})
	}
}

func TestResolveRejectsEmptyCategory(t *testing.T) {
	svc := NewService(missingRepo(), DefaultPolicies())

	if _, err := svc.Resolve(context.Background(), ""); err == nil {
		t.Fatal("expected error for empty category")
	}
}

func TestResolveInvalidPersistedCapacity(t *testing.T) {
	repo := &mockRepository{
		GetByCategoryFunc: func(ctx context.Context, category string) (*RoomTypeConfig, error) {
			return &RoomTypeConfig{Category: CategoryFamily, Capacity: 0}, nil
		},
	}

	svc := NewService(repo, DefaultPolicies())

	if _, err := svc.Resolve(context.Background(), CategoryFamily); err == nil {
		t.Fatal("expected error for zero capacity row")
	}
}

func TestResolveRepositoryErrorPropagates(t *testing.T) {
	repoErr := errors.New("connection refused")
	repo := &mockRepository{
		GetByCategoryFunc: func(ctx context.Context, category string) (*RoomTypeConfig, error) {
			return nil, repoErr
		},
	}

	svc := NewService(repo, DefaultPolicies())

	if _, err := svc.Resolve(context.Background(), CategoryStandard); !errors.Is(err, repoErr) {
		t.Fatalf("error = %v, want wrapped %v", err, repoErr)
	}
}

func TestUpsertConfigValidation(t *testing.T) {
	svc := NewService(&mockRepository{GetByCategoryFunc: missingRepo().GetByCategoryFunc}, DefaultPolicies())

	tests := []struct {
		name string
		req  UpsertConfigRequest
	}{
		{"zero capacity", UpsertConfigRequest{Category: CategoryStandard, Capacity: 0}},
		{"negative pre buffer", UpsertConfigRequest{Category: CategoryStandard, Capacity: 5, PreBufferMin: -1}},
		{"negative post buffer", UpsertConfigRequest{Category: CategoryStandard, Capacity: 5, PostBufferMin: -10}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := svc.UpsertConfig(context.Background(), tt.req); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestUpsertConfigPersists(t *testing.T) {
	var stored *RoomTypeConfig
	repo := &mockRepository{
		GetByCategoryFunc: missingRepo().GetByCategoryFunc,
		UpsertFunc: func(ctx context.Context, config *RoomTypeConfig) error {
			stored = config
			return nil
		},
	}

	svc := NewService(repo, DefaultPolicies())

	got, err := svc.UpsertConfig(context.Background(), UpsertConfigRequest{
		Category:      CategoryFamily,
		Capacity:      2,
		PreBufferMin:  45,
		PostBufferMin: 45,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if stored == nil || stored != got {
		t.Fatal("upserted config was not passed to the repository")
	}
	if stored.Category != CategoryFamily || stored.Capacity != 2 || stored.PreBufferMin != 45 || stored.PostBufferMin != 45 {
		t.Errorf("stored config = %+v", stored)
	}
}

func TestDefaultPoliciesTable(t *testing.T) {
	defaults := DefaultPolicies()

	if defaults[CategoryStandard].Capacity != 23 {
		t.Errorf("STANDARD default capacity = %d, want 23", defaults[CategoryStandard].Capacity)
	}
	if defaults[CategoryFamily].Capacity != 1 {
		t.Errorf("FAMILY default capacity = %d, want 1", defaults[CategoryFamily].Capacity)
	}
	if FallbackCategory != CategoryStandard {
		t.Errorf("fallback category = %q, want %q", FallbackCategory, CategoryStandard)
	}
}
