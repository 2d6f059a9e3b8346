package db

import (
	"fmt"
	"log"

	"github.com/Enigmah-00/MindBridge-sub000/models"
	"gorm.io/gorm"
)

func Migrate() {
	// Initialize DB connection
	Init()

	if err := MigrateWith(DB); err != nil {
		log.Fatal("Failed to run migrations: ", err)
	}

	fmt.Println("✅ Migrations applied successfully!")
}

// MigrateWith runs the schema migration against an arbitrary connection.
// Tests use it against an in-memory database.
func MigrateWith(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.User{},
		&models.DoctorProfile{},
		&models.WeeklyAvailability{},
		&models.Appointment{},
		&models.Quiz{},
		&models.QuizQuestion{},
		&models.QuizOption{},
		&models.QuizResult{},
		&models.DailyCheckin{},
		&models.Message{},
	)
	if err != nil {
		return err
	}

	// Backstop for the no-double-booking invariant: at most one non-cancelled
	// appointment per doctor, date and slot. Cancelled rows fall outside the
	// index so their slot can be claimed again.
	return db.Exec(`CREATE UNIQUE INDEX IF NOT EXISTS idx_appointments_active_slot
		ON appointments (doctor_id, date, start_minute)
		WHERE status <> 'CANCELLED'`).Error
}
