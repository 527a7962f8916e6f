package service_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/voyageur/backend/internal/domain"
	"github.com/voyageur/backend/internal/media"
	"github.com/voyageur/backend/internal/repo"
	"github.com/voyageur/backend/internal/service"
)

// mockPropertyRepo is a hand-written test double for repo.PropertyRepo.
// Each method is a function field so a test sets only the ones it needs.
type mockPropertyRepo struct {
	nextID       func(ctx context.Context) (int, error)
	create       func(ctx context.Context, p domain.Property) (domain.Property, error)
	getByID      func(ctx context.Context, id int) (domain.Property, error)
	list         func(ctx context.Context, page domain.PaginationParams) ([]domain.Property, error)
	listFeatured func(ctx context.Context) ([]domain.Property, error)
	update       func(ctx context.Context, id int, upd domain.PropertyUpdate) error
	delete       func(ctx context.Context, id int) error
}

func (m *mockPropertyRepo) NextID(ctx context.Context) (int, error) { return m.nextID(ctx) }
func (m *mockPropertyRepo) Create(ctx context.Context, p domain.Property) (domain.Property, error) {
	return m.create(ctx, p)
}
func (m *mockPropertyRepo) GetByID(ctx context.Context, id int) (domain.Property, error) {
	return m.getByID(ctx, id)
}
func (m *mockPropertyRepo) List(ctx context.Context, page domain.PaginationParams) ([]domain.Property, error) {
	return m.list(ctx, page)
}
func (m *mockPropertyRepo) ListFeatured(ctx context.Context) ([]domain.Property, error) {
	return m.listFeatured(ctx)
}
func (m *mockPropertyRepo) Update(ctx context.Context, id int, upd domain.PropertyUpdate) error {
	return m.update(ctx, id, upd)
}
func (m *mockPropertyRepo) Delete(ctx context.Context, id int) error { return m.delete(ctx, id) }

// compile-time check: mockPropertyRepo must satisfy repo.PropertyRepo.
var _ repo.PropertyRepo = (*mockPropertyRepo)(nil)

// fakeUploader is an in-memory media.Uploader. It records every upload and
// delete, and returns a URL derived from the filename so tests can assert
// ordering. failOn marks a filename whose upload should fail.
type fakeUploader struct {
	mu       sync.Mutex
	uploaded []string
	deleted  []string
	failOn   string
}

func (f *fakeUploader) Upload(_ context.Context, file media.File, folder string) (media.Asset, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if file.Name == f.failOn {
		return media.Asset{}, errors.New("upload rejected")
	}
	f.uploaded = append(f.uploaded, file.Name)
	return media.Asset{
		URL:      "https://cdn.example.com/" + folder + "/" + file.Name,
		PublicID: folder + "/" + file.Name,
	}, nil
}

func (f *fakeUploader) Delete(_ context.Context, publicID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleted = append(f.deleted, publicID)
	return nil
}

var _ media.Uploader = (*fakeUploader)(nil)

// ---- helpers ---------------------------------------------------------------

func propertyInput() domain.Property {
	return domain.Property{
		Owner:       "Ava Chen",
		Name:        "Seaside Loft",
		Type:        "Apartment",
		Description: "two blocks from the beach",
		Location:    domain.Location{City: "Santa Cruz", State: "CA"},
		Beds:        2,
		Baths:       1,
		SquareFeet:  850,
		Amenities:   []string{"wifi", "parking"},
	}
}

func imageFiles(names ...string) []media.File {
	files := make([]media.File, len(names))
	for i, n := range names {
		files[i] = media.File{Name: n, Data: []byte("fake image bytes")}
	}
	return files
}

// echoPropertyRepo hands out sequential ids and echoes created documents back.
func echoPropertyRepo(start int) *mockPropertyRepo {
	next := start
	return &mockPropertyRepo{
		nextID: func(context.Context) (int, error) {
			id := next
			next++
			return id, nil
		},
		create: func(_ context.Context, p domain.Property) (domain.Property, error) { return p, nil },
	}
}

// ---- Create ----------------------------------------------------------------

func TestPropertyService_Create_AssignsSequentialIDs(t *testing.T) {
	svc := service.NewPropertyService(echoPropertyRepo(7), &fakeUploader{})

	first, err := svc.Create(context.Background(), propertyInput(), nil)
	require.NoError(t, err)
	second, err := svc.Create(context.Background(), propertyInput(), nil)
	require.NoError(t, err)

	assert.Equal(t, 7, first.ID)
	assert.Equal(t, 8, second.ID)
}

func TestPropertyService_Create_StampsDefaults(t *testing.T) {
	in := propertyInput()
	in.IsFeatured = true // client-supplied value must be ignored

	svc := service.NewPropertyService(echoPropertyRepo(1), &fakeUploader{})
	got, err := svc.Create(context.Background(), in, nil)

	require.NoError(t, err)
	assert.False(t, got.IsFeatured)
	assert.False(t, got.CreatedAt.IsZero())
	assert.Equal(t, got.CreatedAt, got.UpdatedAt)
}

func TestPropertyService_Create_ImageURLsPreserveOrder(t *testing.T) {
	svc := service.NewPropertyService(echoPropertyRepo(1), &fakeUploader{})

	got, err := svc.Create(context.Background(), propertyInput(), imageFiles("a.jpg", "b.jpg"))

	require.NoError(t, err)
	require.Len(t, got.Images, 2)
	assert.Contains(t, got.Images[0], "a.jpg")
	assert.Contains(t, got.Images[1], "b.jpg")
	for _, url := range got.Images {
		assert.NotEmpty(t, url)
	}
}

func TestPropertyService_Create_TooManyImages(t *testing.T) {
	up := &fakeUploader{}
	svc := service.NewPropertyService(echoPropertyRepo(1), up)

	_, err := svc.Create(context.Background(), propertyInput(), imageFiles("1.jpg", "2.jpg", "3.jpg", "4.jpg", "5.jpg"))

	require.ErrorIs(t, err, domain.ErrValidation)
	assert.Empty(t, up.uploaded)
}

func TestPropertyService_Create_UploadFailureAbortsPersist(t *testing.T) {
	persisted := false
	repo := echoPropertyRepo(1)
	repo.create = func(_ context.Context, p domain.Property) (domain.Property, error) {
		persisted = true
		return p, nil
	}
	up := &fakeUploader{failOn: "b.jpg"}
	svc := service.NewPropertyService(repo, up)

	_, err := svc.Create(context.Background(), propertyInput(), imageFiles("a.jpg", "b.jpg"))

	require.ErrorIs(t, err, domain.ErrUpstream)
	assert.False(t, persisted, "nothing may be persisted when any upload fails")
}

func TestPropertyService_Create_PersistFailureCleansUpAssets(t *testing.T) {
	repo := echoPropertyRepo(1)
	repo.create = func(context.Context, domain.Property) (domain.Property, error) {
		return domain.Property{}, fmt.Errorf("repo.PropertyRepo.Create: %w", errors.New("write concern failed"))
	}
	up := &fakeUploader{}
	svc := service.NewPropertyService(repo, up)

	_, err := svc.Create(context.Background(), propertyInput(), imageFiles("a.jpg", "b.jpg"))

	require.Error(t, err)
	assert.Len(t, up.deleted, 2, "both uploaded assets must be deleted after a failed persist")
}

// ---- Lookups ---------------------------------------------------------------

func TestPropertyService_List_NilBecomesEmptySlice(t *testing.T) {
	svc := service.NewPropertyService(&mockPropertyRepo{
		list: func(context.Context, domain.PaginationParams) ([]domain.Property, error) { return nil, nil },
	}, &fakeUploader{})

	got, err := svc.List(context.Background(), domain.PaginationParams{Page: 1})

	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestPropertyService_Update_NotFound(t *testing.T) {
	svc := service.NewPropertyService(&mockPropertyRepo{
		update: func(context.Context, int, domain.PropertyUpdate) error {
			return fmt.Errorf("repo.PropertyRepo.Update: %w", domain.ErrNotFound)
		},
	}, &fakeUploader{})

	err := svc.Update(context.Background(), 999, domain.PropertyUpdate{})

	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestPropertyService_Delete_NotFound(t *testing.T) {
	svc := service.NewPropertyService(&mockPropertyRepo{
		delete: func(context.Context, int) error {
			return fmt.Errorf("repo.PropertyRepo.Delete: %w", domain.ErrNotFound)
		},
	}, &fakeUploader{})

	err := svc.Delete(context.Background(), 999)

	require.ErrorIs(t, err, domain.ErrNotFound)
}
