package scheduler

import (
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/Enigmah-00/MindBridge-sub000/db"
	"github.com/Enigmah-00/MindBridge-sub000/models"
	"github.com/Enigmah-00/MindBridge-sub000/utils"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	if err := db.MigrateWith(gdb); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	return gdb
}

// newFileTestDB opens a file-backed database so that separate connections
// see each other's writes, which :memory: does not allow. BEGIN IMMEDIATE
// plus a busy timeout makes concurrent transactions queue instead of
// failing with a lock error.
func newFileTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?_busy_timeout=5000&_txlock=immediate",
		filepath.Join(t.TempDir(), "scheduler.db"))
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	if err := db.MigrateWith(gdb); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	return gdb
}

// newClinic seeds one doctor with a Monday 9:00-12:00 rule of 30 minute
// slots, plus two patients. Returns the service and the created user IDs.
func newClinic(t *testing.T) (*Service, uint, uint, uint) {
	t.Helper()
	return newClinicOn(t, newTestDB(t))
}

func newClinicOn(t *testing.T, gdb *gorm.DB) (*Service, uint, uint, uint) {
	t.Helper()

	doctor := models.User{Name: "Dr. Rahman", Email: "rahman@example.com", Role: models.RoleDoctor}
	patientA := models.User{Name: "Ayesha", Email: "ayesha@example.com", Role: models.RoleUser}
	patientB := models.User{Name: "Tanvir", Email: "tanvir@example.com", Role: models.RoleUser}
	for _, u := range []*models.User{&doctor, &patientA, &patientB} {
		if err := gdb.Create(u).Error; err != nil {
			t.Fatalf("failed to create user: %v", err)
		}
	}

	r := rule(models.Monday, 540, 720, 30)
	r.DoctorID = doctor.ID
	if err := gdb.Create(&r).Error; err != nil {
		t.Fatalf("failed to create rule: %v", err)
	}

	return New(gdb), doctor.ID, patientA.ID, patientB.ID
}

func TestBook_AssignsSequentialSerials(t *testing.T) {
	svc, doctorID, patientA, patientB := newClinic(t)

	starts := []int{540, 570, 600}
	patients := []uint{patientA, patientB, patientA}

	for i, start := range starts {
		appt, err := svc.Book(doctorID, patients[i], monday, start)
		if err != nil {
			t.Fatalf("booking slot %d failed: %v", start, err)
		}
		if appt.SerialNumber != uint(i+1) {
			t.Fatalf("expected serial %d for booking %d, got %d", i+1, i, appt.SerialNumber)
		}
		if appt.Status != models.StatusBooked {
			t.Fatalf("expected status BOOKED, got %s", appt.Status)
		}
		if appt.MeetingCode == "" {
			t.Fatalf("expected a meeting code to be assigned")
		}
	}
}

func TestBook_SameSlotConflicts(t *testing.T) {
	svc, doctorID, patientA, patientB := newClinic(t)

	if _, err := svc.Book(doctorID, patientA, monday, 540); err != nil {
		t.Fatalf("first booking failed: %v", err)
	}

	_, err := svc.Book(doctorID, patientB, monday, 540)
	if !errors.Is(err, ErrSlotTaken) {
		t.Fatalf("expected ErrSlotTaken for double booking, got %v", err)
	}
}

func TestBook_SlotNotOffered(t *testing.T) {
	svc, doctorID, patientA, _ := newClinic(t)

	// 8:00 is before the doctor's window.
	if _, err := svc.Book(doctorID, patientA, monday, 480); !errors.Is(err, ErrSlotNotOffered) {
		t.Fatalf("expected ErrSlotNotOffered before the window, got %v", err)
	}
	// 9:15 does not land on a slot boundary.
	if _, err := svc.Book(doctorID, patientA, monday, 555); !errors.Is(err, ErrSlotNotOffered) {
		t.Fatalf("expected ErrSlotNotOffered off the slot grid, got %v", err)
	}
	// Tuesday has no rule at all.
	if _, err := svc.Book(doctorID, patientA, tuesday, 540); !errors.Is(err, ErrSlotNotOffered) {
		t.Fatalf("expected ErrSlotNotOffered on a ruleless weekday, got %v", err)
	}
}

func TestBook_CancelDoesNotRenumber(t *testing.T) {
	svc, doctorID, patientA, patientB := newClinic(t)

	first, err := svc.Book(doctorID, patientA, monday, 540)
	if err != nil {
		t.Fatalf("first booking failed: %v", err)
	}
	second, err := svc.Book(doctorID, patientB, monday, 570)
	if err != nil {
		t.Fatalf("second booking failed: %v", err)
	}
	third, err := svc.Book(doctorID, patientA, monday, 600)
	if err != nil {
		t.Fatalf("third booking failed: %v", err)
	}

	if err := second.UpdateStatus(svc.db, models.StatusCancelled); err != nil {
		t.Fatalf("cancel failed: %v", err)
	}

	for _, want := range []*models.Appointment{first, third} {
		var got models.Appointment
		if err := svc.db.First(&got, want.ID).Error; err != nil {
			t.Fatalf("failed to reload appointment %d: %v", want.ID, err)
		}
		if got.SerialNumber != want.SerialNumber {
			t.Fatalf("serial of appointment %d changed from %d to %d after cancel",
				want.ID, want.SerialNumber, got.SerialNumber)
		}
	}
}

func TestBook_CancelledSlotCanBeRebooked(t *testing.T) {
	svc, doctorID, patientA, patientB := newClinic(t)

	first, err := svc.Book(doctorID, patientA, monday, 540)
	if err != nil {
		t.Fatalf("first booking failed: %v", err)
	}
	if err := first.UpdateStatus(svc.db, models.StatusCancelled); err != nil {
		t.Fatalf("cancel failed: %v", err)
	}

	// The freed slot is claimable again, and the serial counter keeps
	// counting instead of reusing 1.
	rebooked, err := svc.Book(doctorID, patientB, monday, 540)
	if err != nil {
		t.Fatalf("rebooking a cancelled slot failed: %v", err)
	}
	if rebooked.SerialNumber != 2 {
		t.Fatalf("expected serial 2 for the rebooking, got %d", rebooked.SerialNumber)
	}
}

func TestBook_DistinctSlotsFillSerialRange(t *testing.T) {
	svc, doctorID, patientA, patientB := newClinic(t)

	patients := []uint{patientA, patientB}
	seen := make(map[uint]bool)
	for i, start := range []int{540, 570, 600, 630, 660, 690} {
		appt, err := svc.Book(doctorID, patients[i%2], monday, start)
		if err != nil {
			t.Fatalf("booking slot %d failed: %v", start, err)
		}
		if seen[appt.SerialNumber] {
			t.Fatalf("serial %d assigned twice", appt.SerialNumber)
		}
		seen[appt.SerialNumber] = true
	}
	for serial := uint(1); serial <= 6; serial++ {
		if !seen[serial] {
			t.Fatalf("serial %d missing; serials must be 1..6 with no gaps", serial)
		}
	}

	// The day is now full.
	if _, err := svc.Book(doctorID, patientA, monday, 540); !errors.Is(err, ErrSlotTaken) {
		t.Fatalf("expected ErrSlotTaken on a full day, got %v", err)
	}
}

func TestAvailableSlots_RemovesBookedOnly(t *testing.T) {
	svc, doctorID, patientA, _ := newClinic(t)

	booked, err := svc.Book(doctorID, patientA, monday, 570)
	if err != nil {
		t.Fatalf("booking failed: %v", err)
	}

	slots, err := svc.AvailableSlots(doctorID, monday)
	if err != nil {
		t.Fatalf("AvailableSlots failed: %v", err)
	}
	want := []int{540, 600, 630, 660, 690}
	if !equalInts(startMinutes(slots), want) {
		t.Fatalf("expected free starts %v, got %v", want, startMinutes(slots))
	}

	// Cancelling returns the slot to the pool.
	if err := booked.UpdateStatus(svc.db, models.StatusCancelled); err != nil {
		t.Fatalf("cancel failed: %v", err)
	}
	slots, err = svc.AvailableSlots(doctorID, monday)
	if err != nil {
		t.Fatalf("AvailableSlots failed: %v", err)
	}
	want = []int{540, 570, 600, 630, 660, 690}
	if !equalInts(startMinutes(slots), want) {
		t.Fatalf("expected free starts %v after cancel, got %v", want, startMinutes(slots))
	}
}

func TestAvailableSlots_UnknownDoctorIsEmpty(t *testing.T) {
	svc, _, _, _ := newClinic(t)

	slots, err := svc.AvailableSlots(9999, monday)
	if err != nil {
		t.Fatalf("AvailableSlots failed: %v", err)
	}
	if len(slots) != 0 {
		t.Fatalf("expected empty slot list for unknown doctor, got %v", slots)
	}
}

func TestAvailableSlots_RulelessWeekdayIsEmpty(t *testing.T) {
	svc, doctorID, _, _ := newClinic(t)

	slots, err := svc.AvailableSlots(doctorID, tuesday)
	if err != nil {
		t.Fatalf("AvailableSlots failed: %v", err)
	}
	if len(slots) != 0 {
		t.Fatalf("expected empty slot list on a ruleless weekday, got %v", slots)
	}
}

func TestBook_SerialsIndependentPerDoctorAndDate(t *testing.T) {
	svc, doctorID, patientA, _ := newClinic(t)

	// Add a second doctor with the same Monday rule.
	other := models.User{Name: "Dr. Sultana", Email: "sultana@example.com", Role: models.RoleDoctor}
	if err := svc.db.Create(&other).Error; err != nil {
		t.Fatalf("failed to create doctor: %v", err)
	}
	r := rule(models.Monday, 540, 720, 30)
	r.DoctorID = other.ID
	if err := svc.db.Create(&r).Error; err != nil {
		t.Fatalf("failed to create rule: %v", err)
	}

	if appt, err := svc.Book(doctorID, patientA, monday, 540); err != nil || appt.SerialNumber != 1 {
		t.Fatalf("expected serial 1 for first doctor, got %v / %v", appt, err)
	}
	// A different doctor's counter starts from 1 too.
	if appt, err := svc.Book(other.ID, patientA, monday, 540); err != nil || appt.SerialNumber != 1 {
		t.Fatalf("expected serial 1 for second doctor, got %v / %v", appt, err)
	}
	// Next Monday is a fresh counter for the first doctor.
	nextMonday := monday.AddDate(0, 0, 7)
	if appt, err := svc.Book(doctorID, patientA, nextMonday, 540); err != nil || appt.SerialNumber != 1 {
		t.Fatalf("expected serial 1 on a new date, got %v / %v", appt, err)
	}
}

func TestBook_StatusMachine(t *testing.T) {
	svc, doctorID, patientA, _ := newClinic(t)

	appt, err := svc.Book(doctorID, patientA, monday, 540)
	if err != nil {
		t.Fatalf("booking failed: %v", err)
	}

	if err := appt.UpdateStatus(svc.db, models.StatusCompleted); err != nil {
		t.Fatalf("BOOKED -> COMPLETED should be allowed: %v", err)
	}
	if err := appt.UpdateStatus(svc.db, models.StatusCancelled); err == nil {
		t.Fatalf("COMPLETED is terminal; transition to CANCELLED must fail")
	}

	second, err := svc.Book(doctorID, patientA, monday, 570)
	if err != nil {
		t.Fatalf("booking failed: %v", err)
	}
	if err := second.UpdateStatus(svc.db, models.StatusCancelled); err != nil {
		t.Fatalf("BOOKED -> CANCELLED should be allowed: %v", err)
	}
	if err := second.UpdateStatus(svc.db, models.StatusCompleted); err == nil {
		t.Fatalf("CANCELLED is terminal; transition to COMPLETED must fail")
	}
}

func TestBook_ConcurrentSameSlot(t *testing.T) {
	svc, doctorID, patientA, patientB := newClinicOn(t, newFileTestDB(t))
	patients := []uint{patientA, patientB}

	const attempts = 4
	var wg sync.WaitGroup
	results := make(chan error, attempts)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(patient uint) {
			defer wg.Done()
			_, err := svc.Book(doctorID, patient, monday, 540)
			results <- err
		}(patients[i%len(patients)])
	}
	wg.Wait()
	close(results)

	successes, conflicts := 0, 0
	for err := range results {
		switch {
		case err == nil:
			successes++
		case errors.Is(err, ErrSlotTaken):
			conflicts++
		default:
			t.Fatalf("unexpected booking error: %v", err)
		}
	}
	if successes != 1 || conflicts != attempts-1 {
		t.Fatalf("expected 1 success and %d conflicts, got %d and %d",
			attempts-1, successes, conflicts)
	}

	var count int64
	svc.db.Model(&models.Appointment{}).
		Where("doctor_id = ? AND start_minute = ?", doctorID, 540).
		Count(&count)
	if count != 1 {
		t.Fatalf("expected exactly one stored appointment for the slot, got %d", count)
	}
}

func TestBook_ConcurrentDistinctSlots(t *testing.T) {
	svc, doctorID, patientA, patientB := newClinicOn(t, newFileTestDB(t))
	patients := []uint{patientA, patientB}

	starts := []int{540, 570, 600, 630, 660, 690}
	var wg sync.WaitGroup
	serials := make(chan uint, len(starts))
	for i, start := range starts {
		wg.Add(1)
		go func(patient uint, start int) {
			defer wg.Done()
			appt, err := svc.Book(doctorID, patient, monday, start)
			if err != nil {
				t.Errorf("booking slot %d failed: %v", start, err)
				return
			}
			serials <- appt.SerialNumber
		}(patients[i%len(patients)], start)
	}
	wg.Wait()
	close(serials)

	seen := make(map[uint]bool)
	for serial := range serials {
		if seen[serial] {
			t.Fatalf("serial %d assigned twice", serial)
		}
		seen[serial] = true
	}
	for want := uint(1); want <= uint(len(starts)); want++ {
		if !seen[want] {
			t.Fatalf("serial %d never assigned, got %v", want, seen)
		}
	}
}

func TestActiveSlotIndex_BlocksDuplicateInsert(t *testing.T) {
	// The partial unique index is the last line of defence when two inserts
	// slip past the transactional occupancy check.
	gdb := newTestDB(t)

	first := models.Appointment{DoctorID: 1, PatientID: 2, Date: monday,
		StartMinute: 540, SlotMinutes: 30, SerialNumber: 1, Status: models.StatusBooked}
	if err := gdb.Create(&first).Error; err != nil {
		t.Fatalf("first insert failed: %v", err)
	}

	second := models.Appointment{DoctorID: 1, PatientID: 3, Date: monday,
		StartMinute: 540, SlotMinutes: 30, SerialNumber: 2, Status: models.StatusBooked}
	err := gdb.Create(&second).Error
	if err == nil {
		t.Fatal("duplicate active appointment was accepted")
	}
	if !utils.IsUniqueViolation(err) {
		t.Fatalf("expected a unique violation, got: %v", err)
	}

	// Cancelled rows are outside the index, so the history may keep them
	cancelled := models.Appointment{DoctorID: 1, PatientID: 3, Date: monday,
		StartMinute: 540, SlotMinutes: 30, SerialNumber: 2, Status: models.StatusCancelled}
	if err := gdb.Create(&cancelled).Error; err != nil {
		t.Fatalf("cancelled duplicate should be allowed: %v", err)
	}
}
