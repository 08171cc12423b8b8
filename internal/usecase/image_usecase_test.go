package usecase

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"medical-imaging-backend/internal/delivery/dto"
	"medical-imaging-backend/internal/domain/entity"
)

func TestImageUploadUnknownPatient(t *testing.T) {
	uc := NewImageUsecase(newTestLogger(), newFakeImageRepo(), newFakePatientRepo(), newFakeFileStore())

	req := &dto.ImageUploadRequest{PatientID: 99}
	_, err := uc.Upload(context.Background(), req, "scan.png", bytes.NewReader([]byte("png-bytes")))
	if !errors.Is(err, ErrPatientNotFound) {
		t.Fatalf("expected ErrPatientNotFound, got %v", err)
	}
}

func TestImageUploadStoresFileAndRecord(t *testing.T) {
	patients := newFakePatientRepo()
	store := newFakeFileStore()
	uc := NewImageUsecase(newTestLogger(), newFakeImageRepo(), patients, store)
	ctx := context.Background()

	if err := patients.Create(ctx, &entity.Patient{FullName: "Jane Doe"}); err != nil {
		t.Fatalf("seed patient failed: %v", err)
	}

	req := &dto.ImageUploadRequest{PatientID: 1, Description: "chest scan", ScanType: "X-Ray"}
	resp, err := uc.Upload(ctx, req, "scan.png", bytes.NewReader([]byte("png-bytes")))
	if err != nil {
		t.Fatalf("Upload failed: %v", err)
	}
	if resp.Filename != "scan.png" {
		t.Errorf("expected display filename scan.png, got %q", resp.Filename)
	}
	if resp.FilePath == "" || resp.FilePath == resp.Filename {
		t.Errorf("expected generated stored path, got %q", resp.FilePath)
	}
	if resp.Description != "chest scan" || resp.ScanType != "X-Ray" {
		t.Errorf("unexpected image fields: %+v", resp)
	}

	data, err := store.ReadFile(resp.FilePath)
	if err != nil {
		t.Fatalf("stored file unreadable: %v", err)
	}
	if string(data) != "png-bytes" {
		t.Errorf("stored content mismatch: %q", data)
	}
}

type failingCreateImageRepo struct {
	*fakeImageRepo
}

func (r *failingCreateImageRepo) Create(ctx context.Context, image *entity.Image) error {
	return errors.New("insert failed")
}

func TestImageUploadRemovesFileOnInsertFailure(t *testing.T) {
	patients := newFakePatientRepo()
	store := newFakeFileStore()
	repo := &failingCreateImageRepo{fakeImageRepo: newFakeImageRepo()}
	uc := NewImageUsecase(newTestLogger(), repo, patients, store)
	ctx := context.Background()

	if err := patients.Create(ctx, &entity.Patient{FullName: "Jane Doe"}); err != nil {
		t.Fatalf("seed patient failed: %v", err)
	}

	req := &dto.ImageUploadRequest{PatientID: 1}
	if _, err := uc.Upload(ctx, req, "scan.png", bytes.NewReader([]byte("x"))); err == nil {
		t.Fatal("expected upload to fail")
	}
	if len(store.files) != 0 {
		t.Errorf("stored file left orphaned after failed insert: %v", store.files)
	}
}

func TestImageListByPatientFilters(t *testing.T) {
	patients := newFakePatientRepo()
	store := newFakeFileStore()
	uc := NewImageUsecase(newTestLogger(), newFakeImageRepo(), patients, store)
	ctx := context.Background()

	if err := patients.Create(ctx, &entity.Patient{FullName: "Jane Doe"}); err != nil {
		t.Fatalf("seed patient failed: %v", err)
	}
	if err := patients.Create(ctx, &entity.Patient{FullName: "John Roe"}); err != nil {
		t.Fatalf("seed patient failed: %v", err)
	}

	for _, upload := range []struct {
		patientID uint
		name      string
	}{
		{1, "a.png"},
		{2, "b.png"},
		{1, "c.png"},
	} {
		req := &dto.ImageUploadRequest{PatientID: upload.patientID}
		if _, err := uc.Upload(ctx, req, upload.name, bytes.NewReader([]byte("x"))); err != nil {
			t.Fatalf("Upload %s failed: %v", upload.name, err)
		}
	}

	all, err := uc.List(ctx)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("expected 3 images, got %d", len(all))
	}

	mine, err := uc.ListByPatient(ctx, 1)
	if err != nil {
		t.Fatalf("ListByPatient failed: %v", err)
	}
	if len(mine) != 2 {
		t.Fatalf("expected 2 images for patient 1, got %d", len(mine))
	}
	if mine[0].Filename != "a.png" || mine[1].Filename != "c.png" {
		t.Errorf("unexpected images: %q, %q", mine[0].Filename, mine[1].Filename)
	}
}
