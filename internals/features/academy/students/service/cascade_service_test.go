package service

import (
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	attendanceModel "almanar_backend/internals/features/academy/attendance/model"
	enrollmentModel "almanar_backend/internals/features/academy/enrollments/model"
	"almanar_backend/internals/features/academy/students/model"
	debtModel "almanar_backend/internals/features/finance/debts/model"
	paymentModel "almanar_backend/internals/features/finance/payments/model"
)

// Cascade order only shows up against a real database; the test runs
// when TEST_DATABASE_URL points at a throwaway Postgres and skips
// otherwise.
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	if err := db.AutoMigrate(
		&model.StudentModel{},
		&enrollmentModel.EnrollmentModel{},
		&attendanceModel.AttendanceModel{},
		&debtModel.DebtModel{},
		&paymentModel.PaymentRequestModel{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func TestDeleteStudentCascade_LeavesNoOrphans(t *testing.T) {
	db := openTestDB(t)
	courseID := uuid.New()

	student := &model.StudentModel{StudentName: "طالب تجريبي"}
	assert.NoError(t, db.Create(student).Error)

	enrollment := &enrollmentModel.EnrollmentModel{
		StudentCourseStudentID: student.StudentID,
		StudentCourseCourseID:  courseID,
	}
	assert.NoError(t, db.Create(enrollment).Error)

	mark := &attendanceModel.AttendanceModel{
		AttendanceStudentID: student.StudentID,
		AttendanceCourseID:  courseID,
		AttendanceDate:      time.Now().UTC().Truncate(24 * time.Hour),
		AttendanceStatus:    attendanceModel.StatusPresent,
	}
	assert.NoError(t, db.Create(mark).Error)

	debt := &debtModel.DebtModel{
		DebtStudentID:   student.StudentID,
		DebtDescription: "رسوم التسجيل",
		DebtOwed:        300,
	}
	assert.NoError(t, db.Create(debt).Error)

	request := &paymentModel.PaymentRequestModel{
		PaymentRequestDebtID:    debt.DebtID,
		PaymentRequestStudentID: student.StudentID,
		PaymentRequestAmount:    100,
		PaymentRequestStatus:    paymentModel.StatusPending,
	}
	assert.NoError(t, db.Create(request).Error)

	t.Cleanup(func() {
		db.Exec(`DELETE FROM payment_requests WHERE payment_request_id = ?`, request.PaymentRequestID)
		db.Exec(`DELETE FROM debts WHERE debt_id = ?`, debt.DebtID)
		db.Exec(`DELETE FROM attendance WHERE attendance_student_id = ?`, student.StudentID)
		db.Exec(`DELETE FROM student_courses WHERE student_course_student_id = ?`, student.StudentID)
		db.Exec(`DELETE FROM students WHERE student_id = ?`, student.StudentID)
	})

	assert.NoError(t, DeleteStudentCascade(db, student.StudentID))

	var n int64
	db.Model(&attendanceModel.AttendanceModel{}).Where("attendance_student_id = ?", student.StudentID).Count(&n)
	assert.Zero(t, n, "attendance rows must not survive the student")

	db.Model(&enrollmentModel.EnrollmentModel{}).Where("student_course_student_id = ?", student.StudentID).Count(&n)
	assert.Zero(t, n, "enrollments must not survive the student")

	db.Model(&paymentModel.PaymentRequestModel{}).Where("payment_request_debt_id = ?", debt.DebtID).Count(&n)
	assert.Zero(t, n, "payment requests must not survive the debt")

	db.Model(&debtModel.DebtModel{}).Where("debt_student_id = ?", student.StudentID).Count(&n)
	assert.Zero(t, n, "debts must not survive the student")

	db.Model(&model.StudentModel{}).Where("student_id = ?", student.StudentID).Count(&n)
	assert.Zero(t, n)

	// the second delete finds nothing to remove
	assert.ErrorIs(t, DeleteStudentCascade(db, student.StudentID), gorm.ErrRecordNotFound)
}

func TestDeleteStudentCascade_MissingStudent(t *testing.T) {
	db := openTestDB(t)

	assert.ErrorIs(t, DeleteStudentCascade(db, uuid.New()), gorm.ErrRecordNotFound)
}
