package service

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DeleteStudentCascade removes a student with every dependent row in
// one transaction, in dependency order: attendance, enrollments,
// payment requests, debts, then the student itself. A missing student
// rolls back with gorm.ErrRecordNotFound.
func DeleteStudentCascade(db *gorm.DB, studentID uuid.UUID) error {
	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec(`DELETE FROM attendance WHERE attendance_student_id = ?`, studentID).Error; err != nil {
			return err
		}
		if err := tx.Exec(`DELETE FROM student_courses WHERE student_course_student_id = ?`, studentID).Error; err != nil {
			return err
		}
		if err := tx.Exec(`
			DELETE FROM payment_requests WHERE payment_request_debt_id IN (
				SELECT debt_id FROM debts WHERE debt_student_id = ?
			)
		`, studentID).Error; err != nil {
			return err
		}
		if err := tx.Exec(`DELETE FROM debts WHERE debt_student_id = ?`, studentID).Error; err != nil {
			return err
		}
		res := tx.Exec(`DELETE FROM students WHERE student_id = ?`, studentID)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}
