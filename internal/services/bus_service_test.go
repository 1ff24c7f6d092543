package services_test

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"fleet_admin/internal/history"
	"fleet_admin/internal/images"
	"fleet_admin/internal/models"
	"fleet_admin/internal/repository"
	"fleet_admin/internal/services"
)

// fakeStore stands in for the object store.
type fakeStore struct {
	failUpload bool
	failDelete bool
	uploads    []string
	deletes    []string
}

func (f *fakeStore) Upload(ctx context.Context, bucket, key string, body io.Reader, contentType string) (string, error) {
	if f.failUpload {
		return "", errors.New("store unavailable")
	}
	f.uploads = append(f.uploads, key)
	return f.PublicURL(bucket, key), nil
}

func (f *fakeStore) Delete(ctx context.Context, bucket, key string) error {
	if f.failDelete {
		return errors.New("store unavailable")
	}
	f.deletes = append(f.deletes, key)
	return nil
}

func (f *fakeStore) PublicURL(bucket, key string) string {
	return "https://store.test/storage/v1/object/public/" + bucket + "/" + key
}

// fakeBusRepo keeps records in memory with the same contract as the GORM
// repository, including the blank-field patch rule via BusPatch.Apply.
type fakeBusRepo struct {
	nextID uint
	buses  map[uint]models.Bus
}

func newFakeBusRepo() *fakeBusRepo {
	return &fakeBusRepo{nextID: 1, buses: map[uint]models.Bus{}}
}

func (r *fakeBusRepo) List(ctx context.Context, filter repository.BusFilter) ([]models.Bus, error) {
	var out []models.Bus
	for _, b := range r.buses {
		if filter.ID != nil && b.ID != *filter.ID {
			continue
		}
		if filter.Active != nil && b.Active != *filter.Active {
			continue
		}
		out = append(out, b)
	}
	return out, nil
}

func (r *fakeBusRepo) GetByID(ctx context.Context, id uint) (*models.Bus, error) {
	b, ok := r.buses[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &b, nil
}

func (r *fakeBusRepo) Create(ctx context.Context, bus *models.Bus) error {
	bus.ID = r.nextID
	r.nextID++
	r.buses[bus.ID] = *bus
	return nil
}

func (r *fakeBusRepo) Patch(ctx context.Context, id uint, patch models.BusPatch) (*models.Bus, error) {
	b, ok := r.buses[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	patch.Apply(&b)
	r.buses[id] = b
	return &b, nil
}

func (r *fakeBusRepo) SetActive(ctx context.Context, id uint, active bool) (*models.Bus, error) {
	b, ok := r.buses[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	b.Active = active
	r.buses[id] = b
	return &b, nil
}

func (r *fakeBusRepo) Delete(ctx context.Context, id uint) error {
	if _, ok := r.buses[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.buses, id)
	return nil
}

func (r *fakeBusRepo) IDs(ctx context.Context) ([]uint, error) {
	var ids []uint
	for id := range r.buses {
		ids = append(ids, id)
	}
	return ids, nil
}

func newBusService(repo repository.BusRepository, store *fakeStore) (*services.BusService, *history.Log) {
	log := history.NewLog()
	return &services.BusService{
		Repo:    repo,
		Images:  &images.Lifecycle{Store: store, Bucket: "buses"},
		History: log,
	}, log
}

func pngUpload(name string) *images.Upload {
	return &images.Upload{Filename: name, ContentType: "image/png", Body: strings.NewReader("png")}
}

func strptr(s string) *string { return &s }
func boolptr(b bool) *bool    { return &b }

func TestCreateFoldsCategoryAndDefaultsActive(t *testing.T) {
	repo := newFakeBusRepo()
	svc, _ := newBusService(repo, &fakeStore{})

	bus, err := svc.Create(context.Background(), services.CreateBusInput{
		Name:     "B1",
		Category: " Troncal ",
	}, nil)
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if bus.Category != "troncal" {
		t.Errorf("Create() category = %q, want %q", bus.Category, "troncal")
	}
	if !bus.Active {
		t.Errorf("Create() active = false, want default true")
	}
	if bus.Image != nil {
		t.Errorf("Create() image = %v, want nil without a file", bus.Image)
	}
}

func TestCreateWithImage(t *testing.T) {
	repo := newFakeBusRepo()
	store := &fakeStore{}
	svc, _ := newBusService(repo, store)

	bus, err := svc.Create(context.Background(), services.CreateBusInput{
		Name:     "B1",
		Category: "troncal",
	}, pngUpload("front.png"))
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if bus.Image == nil {
		t.Fatalf("Create() image = nil, want uploaded reference")
	}
	if len(store.uploads) != 1 {
		t.Errorf("Create() uploads = %d, want 1", len(store.uploads))
	}
	if !strings.Contains(*bus.Image, "/public/buses/") {
		t.Errorf("Create() image = %q, want a public bucket URL", *bus.Image)
	}
}

func TestCreateUploadFailureIsFatal(t *testing.T) {
	repo := newFakeBusRepo()
	svc, _ := newBusService(repo, &fakeStore{failUpload: true})

	_, err := svc.Create(context.Background(), services.CreateBusInput{
		Name:     "B1",
		Category: "troncal",
	}, pngUpload("front.png"))
	if !errors.Is(err, images.ErrUpload) {
		t.Fatalf("Create() error = %v, want ErrUpload", err)
	}
	if len(repo.buses) != 0 {
		t.Errorf("Create() persisted a record despite the failed upload")
	}
}

func TestUpdateMissingIDHasNoSideEffects(t *testing.T) {
	repo := newFakeBusRepo()
	store := &fakeStore{}
	svc, log := newBusService(repo, store)

	_, err := svc.Update(context.Background(), 999, models.BusPatch{Name: strptr("ghost")}, pngUpload("x.png"))
	if !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("Update() error = %v, want ErrNotFound", err)
	}
	if len(store.uploads) != 0 || len(store.deletes) != 0 {
		t.Errorf("Update() touched the store for a missing id")
	}
	if log.Len() != 0 {
		t.Errorf("Update() appended history for a missing id")
	}
}

func TestUpdateWithoutFileKeepsImage(t *testing.T) {
	repo := newFakeBusRepo()
	store := &fakeStore{}
	svc, _ := newBusService(repo, store)

	bus, _ := svc.Create(context.Background(), services.CreateBusInput{Name: "B1", Category: "troncal"}, pngUpload("front.png"))
	before := *bus.Image

	updated, err := svc.Update(context.Background(), bus.ID, models.BusPatch{Name: strptr("B1-bis")}, nil)
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if updated.Name != "B1-bis" {
		t.Errorf("Update() name = %q, want %q", updated.Name, "B1-bis")
	}
	if updated.Image == nil || *updated.Image != before {
		t.Errorf("Update() without file changed the image reference")
	}
	if len(store.deletes) != 0 {
		t.Errorf("Update() without file deleted from the store")
	}
}

func TestUpdateWithNewImageReplacesOld(t *testing.T) {
	repo := newFakeBusRepo()
	store := &fakeStore{}
	svc, _ := newBusService(repo, store)

	bus, _ := svc.Create(context.Background(), services.CreateBusInput{Name: "B1", Category: "troncal"}, pngUpload("i1.png"))
	oldKey := store.uploads[0]

	updated, err := svc.Update(context.Background(), bus.ID, models.BusPatch{}, pngUpload("i2.png"))
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if updated.Image == nil || *updated.Image == *bus.Image {
		t.Fatalf("Update() did not replace the image reference")
	}
	if len(store.deletes) != 1 || store.deletes[0] != oldKey {
		t.Errorf("Update() deletes = %v, want [%s]", store.deletes, oldKey)
	}
	if updated.Name != "B1" || updated.Category != "troncal" {
		t.Errorf("Update() altered unrelated fields: %+v", updated)
	}
}

func TestUpdateUploadFailureStillAppliesFields(t *testing.T) {
	repo := newFakeBusRepo()
	store := &fakeStore{}
	svc, _ := newBusService(repo, store)

	bus, _ := svc.Create(context.Background(), services.CreateBusInput{Name: "B1", Category: "troncal"}, pngUpload("i1.png"))
	before := *bus.Image

	store.failUpload = true
	updated, err := svc.Update(context.Background(), bus.ID, models.BusPatch{Name: strptr("B2")}, pngUpload("i2.png"))
	if err != nil {
		t.Fatalf("Update() error = %v, want nil — a failed optional upload is not fatal", err)
	}
	if updated.Name != "B2" {
		t.Errorf("Update() name = %q, want %q", updated.Name, "B2")
	}
	if updated.Image == nil || *updated.Image != before {
		t.Errorf("Update() image = %v, want prior reference %q", updated.Image, before)
	}
}

func TestSetActiveMissingID(t *testing.T) {
	repo := newFakeBusRepo()
	svc, _ := newBusService(repo, &fakeStore{})

	if _, err := svc.SetActive(context.Background(), 42, false); !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("SetActive() error = %v, want ErrNotFound", err)
	}
}

func TestDeleteWithoutImage(t *testing.T) {
	repo := newFakeBusRepo()
	store := &fakeStore{}
	svc, log := newBusService(repo, store)

	bus, _ := svc.Create(context.Background(), services.CreateBusInput{Name: "B1", Category: "zonal"}, nil)

	if err := svc.Delete(context.Background(), bus.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if len(store.deletes) != 0 {
		t.Errorf("Delete() attempted a store delete with no image")
	}
	if _, err := svc.Get(context.Background(), bus.ID); !errors.Is(err, repository.ErrNotFound) {
		t.Errorf("Get() after delete error = %v, want ErrNotFound", err)
	}

	entries := log.All()
	if len(entries) != 1 {
		t.Fatalf("history has %d entries, want 1", len(entries))
	}
	e := entries[0]
	if e.Kind != "bus" || e.ID != bus.ID || e.Name != "B1" || e.Detail != "zonal" {
		t.Errorf("history entry = %+v, want bus snapshot", e)
	}
}

func TestDeleteWithImageRemovesObject(t *testing.T) {
	repo := newFakeBusRepo()
	store := &fakeStore{}
	svc, log := newBusService(repo, store)

	bus, _ := svc.Create(context.Background(), services.CreateBusInput{Name: "B1", Category: "troncal"}, pngUpload("i1.png"))
	key := store.uploads[0]

	if err := svc.Delete(context.Background(), bus.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if len(store.deletes) != 1 || store.deletes[0] != key {
		t.Errorf("Delete() deletes = %v, want [%s]", store.deletes, key)
	}
	if log.Len() != 1 {
		t.Errorf("history has %d entries, want 1", log.Len())
	}
}

func TestDeleteImageFailureDoesNotBlockRecordDelete(t *testing.T) {
	repo := newFakeBusRepo()
	store := &fakeStore{}
	svc, log := newBusService(repo, store)

	bus, _ := svc.Create(context.Background(), services.CreateBusInput{Name: "B1", Category: "troncal"}, pngUpload("i1.png"))

	store.failDelete = true
	if err := svc.Delete(context.Background(), bus.ID); err != nil {
		t.Fatalf("Delete() error = %v, want nil when only the image delete fails", err)
	}
	if _, err := svc.Get(context.Background(), bus.ID); !errors.Is(err, repository.ErrNotFound) {
		t.Errorf("record survived a delete whose image cleanup failed")
	}
	if log.Len() != 1 {
		t.Errorf("history has %d entries, want 1", log.Len())
	}
}

func TestDeleteMissingID(t *testing.T) {
	repo := newFakeBusRepo()
	svc, log := newBusService(repo, &fakeStore{})

	if err := svc.Delete(context.Background(), 999); !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("Delete() error = %v, want ErrNotFound", err)
	}
	if log.Len() != 0 {
		t.Errorf("Delete() of a missing id appended history")
	}
}
