package services

import (
	"context"
	"strings"
	"time"

	"github.com/yberk/infirmary/internal/app/models"
	"github.com/yberk/infirmary/internal/pkg/apperrors"
)

// In-memory stores for exercising the service layer without a database.

type memStudentStore struct {
	nextID   int64
	students map[int64]*models.Student
}

func newMemStudentStore() *memStudentStore {
	return &memStudentStore{students: make(map[int64]*models.Student)}
}

func (m *memStudentStore) Create(_ context.Context, student *models.Student) error {
	for _, existing := range m.students {
		if existing.StudentID == student.StudentID {
			return apperrors.ErrStudentIDAlreadyExists
		}
	}
	m.nextID++
	student.ID = m.nextID
	cp := *student
	m.students[student.ID] = &cp
	return nil
}

func (m *memStudentStore) GetByID(_ context.Context, id int64) (*models.Student, error) {
	if student, ok := m.students[id]; ok {
		cp := *student
		return &cp, nil
	}
	return nil, apperrors.ErrStudentNotFound
}

func (m *memStudentStore) GetByStudentID(_ context.Context, studentID string) (*models.Student, error) {
	for _, student := range m.students {
		if student.StudentID == studentID {
			cp := *student
			return &cp, nil
		}
	}
	return nil, apperrors.ErrStudentNotFound
}

func (m *memStudentStore) GetAll(_ context.Context) ([]*models.Student, error) {
	var result []*models.Student
	for i := int64(1); i <= m.nextID; i++ {
		if student, ok := m.students[i]; ok {
			cp := *student
			result = append(result, &cp)
		}
	}
	return result, nil
}

func (m *memStudentStore) Update(_ context.Context, student *models.Student) error {
	if _, ok := m.students[student.ID]; !ok {
		return apperrors.ErrStudentNotFound
	}
	for id, existing := range m.students {
		if id != student.ID && existing.StudentID == student.StudentID {
			return apperrors.ErrStudentIDAlreadyExists
		}
	}
	cp := *student
	m.students[student.ID] = &cp
	return nil
}

func (m *memStudentStore) Delete(_ context.Context, id int64) error {
	if _, ok := m.students[id]; !ok {
		return apperrors.ErrStudentNotFound
	}
	delete(m.students, id)
	return nil
}

type memMedicineStore struct {
	nextID    int64
	medicines map[int64]*models.Medicine
}

func newMemMedicineStore() *memMedicineStore {
	return &memMedicineStore{medicines: make(map[int64]*models.Medicine)}
}

func (m *memMedicineStore) Create(_ context.Context, medicine *models.Medicine) error {
	m.nextID++
	medicine.ID = m.nextID
	cp := *medicine
	m.medicines[medicine.ID] = &cp
	return nil
}

func (m *memMedicineStore) GetByID(_ context.Context, id int64) (*models.Medicine, error) {
	if medicine, ok := m.medicines[id]; ok {
		cp := *medicine
		return &cp, nil
	}
	return nil, apperrors.ErrMedicineNotFound
}

func (m *memMedicineStore) GetAll(_ context.Context) ([]*models.Medicine, error) {
	var result []*models.Medicine
	for i := int64(1); i <= m.nextID; i++ {
		if medicine, ok := m.medicines[i]; ok {
			cp := *medicine
			result = append(result, &cp)
		}
	}
	return result, nil
}

func (m *memMedicineStore) Search(ctx context.Context, query string) ([]*models.Medicine, error) {
	all, _ := m.GetAll(ctx)
	var result []*models.Medicine
	for _, medicine := range all {
		if containsFold(medicine.Name, query) ||
			(medicine.Brand != nil && containsFold(*medicine.Brand, query)) {
			result = append(result, medicine)
		}
	}
	return result, nil
}

func (m *memMedicineStore) Update(_ context.Context, medicine *models.Medicine) error {
	if _, ok := m.medicines[medicine.ID]; !ok {
		return apperrors.ErrMedicineNotFound
	}
	cp := *medicine
	m.medicines[medicine.ID] = &cp
	return nil
}

func (m *memMedicineStore) Delete(_ context.Context, id int64) error {
	if _, ok := m.medicines[id]; !ok {
		return apperrors.ErrMedicineNotFound
	}
	delete(m.medicines, id)
	return nil
}

type memTreatmentStore struct {
	nextID     int64
	treatments map[int64]*models.Treatment
	medRefs    map[int64][]int64

	students  *memStudentStore
	medicines *memMedicineStore
}

func newMemTreatmentStore(students *memStudentStore, medicines *memMedicineStore) *memTreatmentStore {
	return &memTreatmentStore{
		treatments: make(map[int64]*models.Treatment),
		medRefs:    make(map[int64][]int64),
		students:   students,
		medicines:  medicines,
	}
}

func (m *memTreatmentStore) Create(_ context.Context, treatment *models.Treatment, medicineIDs []int64) error {
	m.nextID++
	treatment.ID = m.nextID
	cp := models.Treatment{
		ID:         treatment.ID,
		StudentRef: treatment.StudentRef,
		Symptoms:   treatment.Symptoms,
		Date:       treatment.Date,
	}
	m.treatments[treatment.ID] = &cp
	m.medRefs[treatment.ID] = append([]int64{}, medicineIDs...)
	return nil
}

func (m *memTreatmentStore) Update(_ context.Context, treatment *models.Treatment, medicineIDs *[]int64) error {
	if _, ok := m.treatments[treatment.ID]; !ok {
		return apperrors.ErrTreatmentNotFound
	}
	cp := models.Treatment{
		ID:         treatment.ID,
		StudentRef: treatment.StudentRef,
		Symptoms:   treatment.Symptoms,
		Date:       treatment.Date,
	}
	m.treatments[treatment.ID] = &cp
	if medicineIDs != nil {
		m.medRefs[treatment.ID] = append([]int64{}, *medicineIDs...)
	}
	return nil
}

func (m *memTreatmentStore) GetByID(_ context.Context, id int64) (*models.Treatment, error) {
	if treatment, ok := m.treatments[id]; ok {
		cp := *treatment
		return &cp, nil
	}
	return nil, apperrors.ErrTreatmentNotFound
}

func (m *memTreatmentStore) GetAll(ctx context.Context) ([]*models.Treatment, error) {
	var result []*models.Treatment
	for i := int64(1); i <= m.nextID; i++ {
		treatment, ok := m.treatments[i]
		if !ok {
			continue
		}
		result = append(result, m.denormalize(ctx, treatment))
	}
	return result, nil
}

func (m *memTreatmentStore) GetByStudentRef(ctx context.Context, studentRef int64) ([]*models.Treatment, error) {
	all, _ := m.GetAll(ctx)
	var result []*models.Treatment
	for _, treatment := range all {
		if treatment.StudentRef == studentRef {
			result = append(result, treatment)
		}
	}
	return result, nil
}

func (m *memTreatmentStore) denormalize(ctx context.Context, t *models.Treatment) *models.Treatment {
	cp := *t
	if student, err := m.students.GetByID(ctx, t.StudentRef); err == nil {
		cp.Student = student
	}
	cp.Medicines = []models.Medicine{}
	for _, id := range m.medRefs[t.ID] {
		if medicine, err := m.medicines.GetByID(ctx, id); err == nil {
			cp.Medicines = append(cp.Medicines, *medicine)
		}
	}
	return &cp
}

func (m *memTreatmentStore) GetTreatedStudents(ctx context.Context) ([]*models.Student, error) {
	seen := make(map[int64]bool)
	var result []*models.Student
	for i := int64(1); i <= m.nextID; i++ {
		treatment, ok := m.treatments[i]
		if !ok || seen[treatment.StudentRef] {
			continue
		}
		seen[treatment.StudentRef] = true
		if student, err := m.students.GetByID(ctx, treatment.StudentRef); err == nil {
			result = append(result, student)
		}
	}
	return result, nil
}

func (m *memTreatmentStore) MedicineIDs(_ context.Context, treatmentID int64) ([]int64, error) {
	return append([]int64{}, m.medRefs[treatmentID]...), nil
}

func (m *memTreatmentStore) Delete(_ context.Context, id int64) error {
	if _, ok := m.treatments[id]; !ok {
		return apperrors.ErrTreatmentNotFound
	}
	delete(m.treatments, id)
	delete(m.medRefs, id)
	return nil
}

type memUserStore struct {
	nextID int64
	users  map[int64]*models.User
}

func newMemUserStore() *memUserStore {
	return &memUserStore{users: make(map[int64]*models.User)}
}

func (m *memUserStore) Create(_ context.Context, user *models.User) error {
	for _, existing := range m.users {
		if existing.Username == user.Username {
			return apperrors.ErrUsernameAlreadyExists
		}
	}
	m.nextID++
	user.ID = m.nextID
	user.CreatedAt = time.Now()
	cp := *user
	m.users[user.ID] = &cp
	return nil
}

func (m *memUserStore) GetByUsername(_ context.Context, username string) (*models.User, error) {
	for _, user := range m.users {
		if user.Username == username {
			cp := *user
			return &cp, nil
		}
	}
	return nil, apperrors.ErrUserNotFound
}

func (m *memUserStore) GetByID(_ context.Context, id int64) (*models.User, error) {
	if user, ok := m.users[id]; ok {
		cp := *user
		return &cp, nil
	}
	return nil, apperrors.ErrUserNotFound
}

func (m *memUserStore) GetAll(_ context.Context) ([]*models.User, error) {
	var result []*models.User
	for i := int64(1); i <= m.nextID; i++ {
		if user, ok := m.users[i]; ok {
			cp := *user
			result = append(result, &cp)
		}
	}
	return result, nil
}

type memTokenStore struct {
	tokens map[string]tokenRecord
}

type tokenRecord struct {
	userID  int64
	expiry  time.Time
	revoked bool
}

func newMemTokenStore() *memTokenStore {
	return &memTokenStore{tokens: make(map[string]tokenRecord)}
}

func (m *memTokenStore) CreateToken(_ context.Context, token string, userID int64, expiryDate time.Time) error {
	m.tokens[token] = tokenRecord{userID: userID, expiry: expiryDate}
	return nil
}

func (m *memTokenStore) GetTokenUser(_ context.Context, token string) (int64, error) {
	record, ok := m.tokens[token]
	if !ok {
		return 0, apperrors.ErrTokenNotFound
	}
	if record.revoked {
		return 0, apperrors.ErrTokenRevoked
	}
	if record.expiry.Before(time.Now()) {
		return 0, apperrors.ErrTokenExpired
	}
	return record.userID, nil
}

func (m *memTokenStore) RevokeToken(_ context.Context, token string) error {
	record, ok := m.tokens[token]
	if !ok {
		return apperrors.ErrTokenNotFound
	}
	record.revoked = true
	m.tokens[token] = record
	return nil
}

func containsFold(s, sub string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(sub))
}
