package scheduler

import (
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Enigmah-00/MindBridge-sub000/models"
	"github.com/Enigmah-00/MindBridge-sub000/utils"
)

// Book claims a slot for a patient. The occupancy re-check, the serial-number
// computation and the insert run in one serializable transaction, so under
// concurrent requests for the same slot at most one caller succeeds; the
// partial unique index on (doctor_id, date, start_minute) catches anything
// the transaction isolation lets through. Serial numbers count every
// appointment ever created for the doctor and date, so cancellations leave
// gaps instead of renumbering.
func (s *Service) Book(doctorID, patientID uint, date time.Time, startMinute int) (*models.Appointment, error) {
	day := utils.DateOnly(date)

	var rules []models.WeeklyAvailability
	if err := s.db.Where("doctor_id = ?", doctorID).Find(&rules).Error; err != nil {
		return nil, err
	}

	var slotMinutes int
	for _, slot := range ExpandRules(rules, day) {
		if slot.StartMinute == startMinute {
			slotMinutes = slot.SlotMinutes
			break
		}
	}
	if slotMinutes == 0 {
		return nil, ErrSlotNotOffered
	}

	appointment := models.Appointment{
		DoctorID:    doctorID,
		PatientID:   patientID,
		Date:        day,
		StartMinute: startMinute,
		SlotMinutes: slotMinutes,
		Status:      models.StatusBooked,
		MeetingCode: uuid.NewString(),
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var occupied int64
		if err := tx.Model(&models.Appointment{}).
			Where("doctor_id = ? AND date = ? AND start_minute = ? AND status <> ?",
				doctorID, day, startMinute, models.StatusCancelled).
			Count(&occupied).Error; err != nil {
			return err
		}
		if occupied > 0 {
			return ErrSlotTaken
		}

		var total int64
		if err := tx.Model(&models.Appointment{}).
			Where("doctor_id = ? AND date = ?", doctorID, day).
			Count(&total).Error; err != nil {
			return err
		}
		appointment.SerialNumber = uint(total) + 1

		return tx.Create(&appointment).Error
	}, &sql.TxOptions{Isolation: sql.LevelSerializable})

	if err != nil {
		if errors.Is(err, ErrSlotTaken) || utils.IsUniqueViolation(err) {
			return nil, ErrSlotTaken
		}
		return nil, err
	}
	return &appointment, nil
}
