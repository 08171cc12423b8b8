package usecase

import (
	"context"
	"fmt"
	"io"
	"time"

	"medical-imaging-backend/internal/domain/entity"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

func newTestLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

// In-memory fakes for the domain repositories and infrastructure seams.

type fakeUserRepo struct {
	users  map[uint]*entity.User
	nextID uint
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[uint]*entity.User{}, nextID: 1}
}

func (r *fakeUserRepo) Create(ctx context.Context, user *entity.User) error {
	for _, u := range r.users {
		if u.Username == user.Username {
			return fmt.Errorf("duplicate username %q", user.Username)
		}
	}
	user.ID = r.nextID
	user.CreatedAt = time.Now()
	r.nextID++
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) FindByID(ctx context.Context, id uint) (*entity.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *u
	return &copied, nil
}

func (r *fakeUserRepo) FindByUsername(ctx context.Context, username string) (*entity.User, error) {
	for _, u := range r.users {
		if u.Username == username {
			copied := *u
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeUserRepo) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeUserRepo) FindAll(ctx context.Context) ([]entity.User, error) {
	var out []entity.User
	for id := uint(1); id < r.nextID; id++ {
		if u, ok := r.users[id]; ok {
			out = append(out, *u)
		}
	}
	return out, nil
}

func (r *fakeUserRepo) Update(ctx context.Context, user *entity.User) error {
	if _, ok := r.users[user.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) Delete(ctx context.Context, user *entity.User) error {
	delete(r.users, user.ID)
	return nil
}

func (r *fakeUserRepo) Count(ctx context.Context) (int64, error) {
	return int64(len(r.users)), nil
}

func (r *fakeUserRepo) CountByRole(ctx context.Context, role string) (int64, error) {
	var n int64
	for _, u := range r.users {
		if u.Role == role {
			n++
		}
	}
	return n, nil
}

func (r *fakeUserRepo) FindLatest(ctx context.Context) (*entity.User, error) {
	var latest *entity.User
	for id := uint(1); id < r.nextID; id++ {
		u, ok := r.users[id]
		if !ok {
			continue
		}
		if latest == nil || !u.CreatedAt.Before(latest.CreatedAt) {
			latest = u
		}
	}
	if latest == nil {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *latest
	return &copied, nil
}

type fakePatientRepo struct {
	patients map[uint]*entity.Patient
	nextID   uint
}

func newFakePatientRepo() *fakePatientRepo {
	return &fakePatientRepo{patients: map[uint]*entity.Patient{}, nextID: 1}
}

func (r *fakePatientRepo) Create(ctx context.Context, patient *entity.Patient) error {
	patient.ID = r.nextID
	r.nextID++
	copied := *patient
	r.patients[patient.ID] = &copied
	return nil
}

func (r *fakePatientRepo) FindByID(ctx context.Context, id uint) (*entity.Patient, error) {
	p, ok := r.patients[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *p
	return &copied, nil
}

func (r *fakePatientRepo) FindAll(ctx context.Context) ([]entity.Patient, error) {
	var out []entity.Patient
	for id := uint(1); id < r.nextID; id++ {
		if p, ok := r.patients[id]; ok {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *fakePatientRepo) Update(ctx context.Context, patient *entity.Patient) error {
	if _, ok := r.patients[patient.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	copied := *patient
	r.patients[patient.ID] = &copied
	return nil
}

func (r *fakePatientRepo) Delete(ctx context.Context, patient *entity.Patient) error {
	delete(r.patients, patient.ID)
	return nil
}

func (r *fakePatientRepo) Count(ctx context.Context) (int64, error) {
	return int64(len(r.patients)), nil
}

type fakeImageRepo struct {
	images map[uint]*entity.Image
	nextID uint
}

func newFakeImageRepo() *fakeImageRepo {
	return &fakeImageRepo{images: map[uint]*entity.Image{}, nextID: 1}
}

func (r *fakeImageRepo) Create(ctx context.Context, image *entity.Image) error {
	image.ID = r.nextID
	image.UploadTime = time.Now()
	r.nextID++
	copied := *image
	r.images[image.ID] = &copied
	return nil
}

func (r *fakeImageRepo) FindByID(ctx context.Context, id uint) (*entity.Image, error) {
	img, ok := r.images[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *img
	return &copied, nil
}

func (r *fakeImageRepo) FindAll(ctx context.Context) ([]entity.Image, error) {
	var out []entity.Image
	for id := uint(1); id < r.nextID; id++ {
		if img, ok := r.images[id]; ok {
			out = append(out, *img)
		}
	}
	return out, nil
}

func (r *fakeImageRepo) FindByPatientID(ctx context.Context, patientID uint) ([]entity.Image, error) {
	var out []entity.Image
	for id := uint(1); id < r.nextID; id++ {
		if img, ok := r.images[id]; ok && img.PatientID == patientID {
			out = append(out, *img)
		}
	}
	return out, nil
}

func (r *fakeImageRepo) Delete(ctx context.Context, image *entity.Image) error {
	delete(r.images, image.ID)
	return nil
}

// fakeReportRepo mirrors the patient preload the real implementation
// performs on reads.
type fakeReportRepo struct {
	reports  map[uint]*entity.Report
	patients *fakePatientRepo
	nextID   uint
}

func newFakeReportRepo(patients *fakePatientRepo) *fakeReportRepo {
	return &fakeReportRepo{reports: map[uint]*entity.Report{}, patients: patients, nextID: 1}
}

func (r *fakeReportRepo) Create(ctx context.Context, report *entity.Report) error {
	report.ID = r.nextID
	report.CreatedAt = time.Now()
	r.nextID++
	copied := *report
	r.reports[report.ID] = &copied
	return nil
}

func (r *fakeReportRepo) FindByID(ctx context.Context, id uint) (*entity.Report, error) {
	rep, ok := r.reports[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *rep
	if r.patients != nil {
		if p, ok := r.patients.patients[copied.PatientID]; ok {
			copied.Patient = *p
		}
	}
	return &copied, nil
}

func (r *fakeReportRepo) FindAll(ctx context.Context) ([]entity.Report, error) {
	var out []entity.Report
	for id := uint(1); id < r.nextID; id++ {
		if rep, ok := r.reports[id]; ok {
			copied := *rep
			if r.patients != nil {
				if p, pok := r.patients.patients[copied.PatientID]; pok {
					copied.Patient = *p
				}
			}
			out = append(out, copied)
		}
	}
	return out, nil
}

func (r *fakeReportRepo) Update(ctx context.Context, report *entity.Report) error {
	if _, ok := r.reports[report.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	copied := *report
	// Mirror the association behavior of a full gorm Save: a loaded
	// Patient wins over a manually changed FK. The real repository
	// omits associations, so callers must hand over a cleared Patient.
	if copied.Patient.ID != 0 {
		copied.PatientID = copied.Patient.ID
	}
	copied.Patient = entity.Patient{}
	r.reports[report.ID] = &copied
	return nil
}

func (r *fakeReportRepo) Delete(ctx context.Context, report *entity.Report) error {
	delete(r.reports, report.ID)
	return nil
}

func (r *fakeReportRepo) Count(ctx context.Context) (int64, error) {
	return int64(len(r.reports)), nil
}

type fakeAnnotationRepo struct {
	annotations map[uint]*entity.Annotation
	nextID      uint
}

func newFakeAnnotationRepo() *fakeAnnotationRepo {
	return &fakeAnnotationRepo{annotations: map[uint]*entity.Annotation{}, nextID: 1}
}

func (r *fakeAnnotationRepo) Create(ctx context.Context, annotation *entity.Annotation) error {
	annotation.ID = r.nextID
	r.nextID++
	copied := *annotation
	r.annotations[annotation.ID] = &copied
	return nil
}

func (r *fakeAnnotationRepo) FindByImageID(ctx context.Context, imageID uint) ([]entity.Annotation, error) {
	var out []entity.Annotation
	for id := uint(1); id < r.nextID; id++ {
		if a, ok := r.annotations[id]; ok && a.ImageID == imageID {
			out = append(out, *a)
		}
	}
	return out, nil
}

type fakeAuditRepo struct {
	entries []entity.AuditLog
}

func (r *fakeAuditRepo) Create(ctx context.Context, log *entity.AuditLog) error {
	r.entries = append(r.entries, *log)
	return nil
}

// fakeFileStore keeps stored files in memory, generating distinct names
// like the local store does.
type fakeFileStore struct {
	files  map[string][]byte
	nextID int
}

func newFakeFileStore() *fakeFileStore {
	return &fakeFileStore{files: map[string][]byte{}}
}

func (s *fakeFileStore) Save(originalName string, content io.Reader) (string, error) {
	data, err := io.ReadAll(content)
	if err != nil {
		return "", err
	}
	s.nextID++
	stored := fmt.Sprintf("stored-%d", s.nextID)
	s.files[stored] = data
	return stored, nil
}

func (s *fakeFileStore) ReadFile(storedPath string) ([]byte, error) {
	data, ok := s.files[storedPath]
	if !ok {
		return nil, fmt.Errorf("file %q not found", storedPath)
	}
	return data, nil
}

func (s *fakeFileStore) Exists(storedPath string) bool {
	_, ok := s.files[storedPath]
	return ok
}

func (s *fakeFileStore) Remove(storedPath string) error {
	if _, ok := s.files[storedPath]; !ok {
		return fmt.Errorf("file %q not found", storedPath)
	}
	delete(s.files, storedPath)
	return nil
}

type fakeDrafter struct {
	text      string
	err       error
	gotPrompt string
	gotData   []byte
	gotFormat string
	callCount int
}

func (d *fakeDrafter) Draft(ctx context.Context, prompt string, imageData []byte, format string) (string, error) {
	d.callCount++
	d.gotPrompt = prompt
	d.gotData = imageData
	d.gotFormat = format
	if d.err != nil {
		return "", d.err
	}
	return d.text, nil
}

type fakeTokenStore struct {
	tokens map[string]bool
}

func newFakeTokenStore() *fakeTokenStore {
	return &fakeTokenStore{tokens: map[string]bool{}}
}

func (s *fakeTokenStore) key(username, tokenID string) string {
	return username + ":" + tokenID
}

func (s *fakeTokenStore) Store(ctx context.Context, username, tokenID string, ttl time.Duration) error {
	s.tokens[s.key(username, tokenID)] = true
	return nil
}

func (s *fakeTokenStore) Exists(ctx context.Context, username, tokenID string) (bool, error) {
	return s.tokens[s.key(username, tokenID)], nil
}

func (s *fakeTokenStore) Revoke(ctx context.Context, username, tokenID string) error {
	delete(s.tokens, s.key(username, tokenID))
	return nil
}
