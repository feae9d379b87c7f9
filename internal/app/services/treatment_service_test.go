package services

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/yberk/infirmary/internal/app/models"
	"github.com/yberk/infirmary/internal/app/models/dto"
	"github.com/yberk/infirmary/internal/pkg/apperrors"
)

type treatmentFixture struct {
	service    *TreatmentService
	students   *memStudentStore
	medicines  *memMedicineStore
	treatments *memTreatmentStore
}

func newTreatmentFixture(t *testing.T) *treatmentFixture {
	t.Helper()
	students := newMemStudentStore()
	medicines := newMemMedicineStore()
	treatments := newMemTreatmentStore(students, medicines)
	return &treatmentFixture{
		service:    NewTreatmentService(treatments, students, medicines, zerolog.Nop()),
		students:   students,
		medicines:  medicines,
		treatments: treatments,
	}
}

func (f *treatmentFixture) addStudent(t *testing.T, studentID, name string) *models.Student {
	t.Helper()
	student := &models.Student{StudentID: studentID, Name: name}
	if err := f.students.Create(context.Background(), student); err != nil {
		t.Fatal(err)
	}
	return student
}

func (f *treatmentFixture) addMedicine(t *testing.T, name string) *models.Medicine {
	t.Helper()
	medicine := &models.Medicine{Name: name}
	if err := f.medicines.Create(context.Background(), medicine); err != nil {
		t.Fatal(err)
	}
	return medicine
}

func strPtr(s string) *string { return &s }

func TestCreateTreatmentDenormalizes(t *testing.T) {
	f := newTreatmentFixture(t)
	ctx := context.Background()

	f.addStudent(t, "S1001", "Alice")
	m1 := f.addMedicine(t, "Panadol")
	m2 := f.addMedicine(t, "Ibuprofen")

	resp, err := f.service.CreateTreatment(ctx, &dto.CreateTreatmentRequest{
		StudentID:   "S1001",
		Symptoms:    strPtr("headache"),
		MedicineIDs: []int64{m1.ID, m2.ID},
	})
	if err != nil {
		t.Fatalf("CreateTreatment: %v", err)
	}

	if resp.Student.StudentID != "S1001" || resp.Student.Name != "Alice" {
		t.Errorf("student not inlined: %+v", resp.Student)
	}
	if len(resp.Medicines) != 2 || resp.Medicines[0].Name != "Panadol" || resp.Medicines[1].Name != "Ibuprofen" {
		t.Errorf("medicines not inlined in order: %+v", resp.Medicines)
	}
	if resp.Date.IsZero() {
		t.Error("date not defaulted")
	}
}

func TestCreateTreatmentUnknownStudentIsBadRequest(t *testing.T) {
	f := newTreatmentFixture(t)

	_, err := f.service.CreateTreatment(context.Background(), &dto.CreateTreatmentRequest{
		StudentID: "S9999",
	})
	if !apperrors.Is(err, apperrors.ErrStudentRefNotFound) {
		t.Fatalf("err = %v, want ErrStudentRefNotFound", err)
	}
	if all, _ := f.treatments.GetAll(context.Background()); len(all) != 0 {
		t.Error("treatment persisted despite unresolved student")
	}
}

func TestCreateTreatmentAllOrNothingMedicines(t *testing.T) {
	f := newTreatmentFixture(t)
	ctx := context.Background()

	f.addStudent(t, "S1001", "Alice")
	m1 := f.addMedicine(t, "Panadol")
	m2 := f.addMedicine(t, "Ibuprofen")
	m3 := f.addMedicine(t, "Aspirin")

	_, err := f.service.CreateTreatment(ctx, &dto.CreateTreatmentRequest{
		StudentID:   "S1001",
		MedicineIDs: []int64{m1.ID, 999, m2.ID, m3.ID},
	})
	if !apperrors.Is(err, apperrors.ErrMedicineRefNotFound) {
		t.Fatalf("err = %v, want ErrMedicineRefNotFound", err)
	}

	all, _ := f.treatments.GetAll(ctx)
	if len(all) != 0 {
		t.Errorf("expected no persisted treatment, got %d", len(all))
	}
}

func TestCreateTreatmentZeroMedicinesIsValid(t *testing.T) {
	f := newTreatmentFixture(t)

	f.addStudent(t, "S1001", "Alice")
	resp, err := f.service.CreateTreatment(context.Background(), &dto.CreateTreatmentRequest{
		StudentID: "S1001",
	})
	if err != nil {
		t.Fatalf("CreateTreatment: %v", err)
	}
	if len(resp.Medicines) != 0 {
		t.Errorf("medicines = %v, want empty", resp.Medicines)
	}
}

func TestUpdateTreatmentPartialSemantics(t *testing.T) {
	f := newTreatmentFixture(t)
	ctx := context.Background()

	f.addStudent(t, "S1001", "Alice")
	other := f.addStudent(t, "S1002", "Bob")
	m1 := f.addMedicine(t, "Panadol")

	created, err := f.service.CreateTreatment(ctx, &dto.CreateTreatmentRequest{
		StudentID:   "S1001",
		Symptoms:    strPtr("fever"),
		MedicineIDs: []int64{m1.ID},
	})
	if err != nil {
		t.Fatal(err)
	}

	// Changing the student without a medicines list must keep the refs
	resp, err := f.service.UpdateTreatment(ctx, created.ID, &dto.UpdateTreatmentRequest{
		StudentID: strPtr("S1002"),
	})
	if err != nil {
		t.Fatalf("UpdateTreatment: %v", err)
	}
	if resp.Student.ID != other.ID {
		t.Errorf("student = %+v, want Bob", resp.Student)
	}
	if len(resp.Medicines) != 1 || resp.Medicines[0].ID != m1.ID {
		t.Errorf("medicine refs changed: %+v", resp.Medicines)
	}
	if resp.Symptoms == nil || *resp.Symptoms != "fever" {
		t.Errorf("symptoms changed: %v", resp.Symptoms)
	}
}

func TestUpdateTreatmentUnknownIDIsNotFound(t *testing.T) {
	f := newTreatmentFixture(t)
	_, err := f.service.UpdateTreatment(context.Background(), 42, &dto.UpdateTreatmentRequest{})
	if !apperrors.Is(err, apperrors.ErrTreatmentNotFound) {
		t.Fatalf("err = %v, want ErrTreatmentNotFound", err)
	}
}

func TestUpdateTreatmentRejectsBadMedicineBeforeWrite(t *testing.T) {
	f := newTreatmentFixture(t)
	ctx := context.Background()

	f.addStudent(t, "S1001", "Alice")
	m1 := f.addMedicine(t, "Panadol")
	created, err := f.service.CreateTreatment(ctx, &dto.CreateTreatmentRequest{
		StudentID:   "S1001",
		MedicineIDs: []int64{m1.ID},
	})
	if err != nil {
		t.Fatal(err)
	}

	bad := []int64{999}
	_, err = f.service.UpdateTreatment(ctx, created.ID, &dto.UpdateTreatmentRequest{
		MedicineIDs: &bad,
	})
	if !apperrors.Is(err, apperrors.ErrMedicineRefNotFound) {
		t.Fatalf("err = %v, want ErrMedicineRefNotFound", err)
	}

	ids, _ := f.treatments.MedicineIDs(ctx, created.ID)
	if len(ids) != 1 || ids[0] != m1.ID {
		t.Errorf("medicine refs modified by failed update: %v", ids)
	}
}

func TestTreatmentHistoryCountInvariant(t *testing.T) {
	f := newTreatmentFixture(t)
	ctx := context.Background()

	f.addStudent(t, "S1001", "Alice")
	f.addStudent(t, "S1002", "Bob")

	for i := 0; i < 3; i++ {
		if _, err := f.service.CreateTreatment(ctx, &dto.CreateTreatmentRequest{StudentID: "S1001"}); err != nil {
			t.Fatal(err)
		}
	}

	history, err := f.service.TreatmentHistory(ctx, "S1001")
	if err != nil {
		t.Fatalf("TreatmentHistory: %v", err)
	}
	if history.TreatmentCount != len(history.History) {
		t.Errorf("count %d != len(history) %d", history.TreatmentCount, len(history.History))
	}
	if history.TreatmentCount != 3 {
		t.Errorf("count = %d, want 3", history.TreatmentCount)
	}

	empty, err := f.service.TreatmentHistory(ctx, "S1002")
	if err != nil {
		t.Fatalf("TreatmentHistory(empty): %v", err)
	}
	if empty.TreatmentCount != 0 || len(empty.History) != 0 {
		t.Errorf("expected empty history, got %+v", empty)
	}

	if _, err := f.service.TreatmentHistory(ctx, "S9999"); !apperrors.Is(err, apperrors.ErrStudentNotFound) {
		t.Errorf("unknown student err = %v, want ErrStudentNotFound", err)
	}
}

func TestTreatedStudentsDistinct(t *testing.T) {
	f := newTreatmentFixture(t)
	ctx := context.Background()

	alice := f.addStudent(t, "S1001", "Alice")
	f.addStudent(t, "S1002", "Bob")

	for i := 0; i < 2; i++ {
		if _, err := f.service.CreateTreatment(ctx, &dto.CreateTreatmentRequest{StudentID: "S1001"}); err != nil {
			t.Fatal(err)
		}
	}

	students, err := f.service.TreatedStudents(ctx)
	if err != nil {
		t.Fatalf("TreatedStudents: %v", err)
	}
	if len(students) != 1 || students[0].ID != alice.ID {
		t.Errorf("treated students = %+v, want just Alice", students)
	}
}

func TestListTreatmentsSkipsDanglingMedicine(t *testing.T) {
	f := newTreatmentFixture(t)
	ctx := context.Background()

	f.addStudent(t, "S1001", "Alice")
	m1 := f.addMedicine(t, "Panadol")
	m2 := f.addMedicine(t, "Ibuprofen")

	if _, err := f.service.CreateTreatment(ctx, &dto.CreateTreatmentRequest{
		StudentID:   "S1001",
		MedicineIDs: []int64{m1.ID, m2.ID},
	}); err != nil {
		t.Fatal(err)
	}

	// No cascade: delete a referenced medicine, the visit stays readable
	if err := f.medicines.Delete(ctx, m1.ID); err != nil {
		t.Fatal(err)
	}

	list, err := f.service.ListTreatments(ctx)
	if err != nil {
		t.Fatalf("ListTreatments: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("len(list) = %d", len(list))
	}
	if len(list[0].Medicines) != 1 || list[0].Medicines[0].ID != m2.ID {
		t.Errorf("medicines = %+v, want just Ibuprofen", list[0].Medicines)
	}
}

func TestDeleteTreatmentTwiceIsNotFound(t *testing.T) {
	f := newTreatmentFixture(t)
	ctx := context.Background()

	f.addStudent(t, "S1001", "Alice")
	created, err := f.service.CreateTreatment(ctx, &dto.CreateTreatmentRequest{StudentID: "S1001"})
	if err != nil {
		t.Fatal(err)
	}

	if err := f.service.DeleteTreatment(ctx, created.ID); err != nil {
		t.Fatalf("first delete: %v", err)
	}
	if err := f.service.DeleteTreatment(ctx, created.ID); !apperrors.Is(err, apperrors.ErrTreatmentNotFound) {
		t.Errorf("second delete err = %v, want ErrTreatmentNotFound", err)
	}
}

func TestCreateTreatmentExplicitDate(t *testing.T) {
	f := newTreatmentFixture(t)
	ctx := context.Background()

	f.addStudent(t, "S1001", "Alice")
	when := time.Date(2024, 5, 1, 9, 30, 0, 0, time.UTC)

	resp, err := f.service.CreateTreatment(ctx, &dto.CreateTreatmentRequest{
		StudentID: "S1001",
		Date:      &when,
	})
	if err != nil {
		t.Fatal(err)
	}
	if !resp.Date.Equal(when) {
		t.Errorf("date = %v, want %v", resp.Date, when)
	}
}
