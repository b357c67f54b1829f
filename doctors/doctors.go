package doctors

import (
	"crypto/rand"
	"math/big"
	"regexp"
	"strconv"
	"strings"
	"time"

	apperrors "github.com/clinicore/go-clinic-server/internal/errors"
)

// Weekday is a day on which a doctor accepts appointments.
type Weekday string

const (
	Monday    Weekday = "Monday"
	Tuesday   Weekday = "Tuesday"
	Wednesday Weekday = "Wednesday"
	Thursday  Weekday = "Thursday"
	Friday    Weekday = "Friday"
	Saturday  Weekday = "Saturday"
	Sunday    Weekday = "Sunday"
)

var validWeekdays = map[Weekday]struct{}{
	Monday: {}, Tuesday: {}, Wednesday: {}, Thursday: {},
	Friday: {}, Saturday: {}, Sunday: {},
}

// timeOfDayRe matches 24-hour HH:MM.
var timeOfDayRe = regexp.MustCompile(`^([01]?[0-9]|2[0-3]):[0-5][0-9]$`)

const (
	maxExperienceYears = 50
	doctorIDPrefix     = "DOC"
)

// TimeRange is a daily availability window in 24-hour HH:MM.
type TimeRange struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

type Doctor struct {
	ID              string    `json:"id"`
	DoctorID        string    `json:"doctorId"` // Business key, e.g. DOCK3J9A1XYZ
	FirstName       string    `json:"firstName"`
	LastName        string    `json:"lastName"`
	Email           string    `json:"email"`
	Phone           string    `json:"phone"`
	Specialization  string    `json:"specialization"`
	Department      string    `json:"department"`
	Experience      int       `json:"experience"`
	Qualification   string    `json:"qualification"`
	ConsultationFee float64   `json:"consultationFee"`
	AvailableDays   []Weekday `json:"availableDays"`
	AvailableTime   TimeRange `json:"availableTime"`
	IsActive        bool      `json:"isActive"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

func (d *Doctor) FullName() string {
	return d.FirstName + " " + d.LastName
}

// Validate enforces the record invariants at construction and update time;
// nothing downstream inspects shapes at runtime.
func (d *Doctor) Validate() error {
	d.FirstName = strings.TrimSpace(d.FirstName)
	d.LastName = strings.TrimSpace(d.LastName)
	d.Email = strings.ToLower(strings.TrimSpace(d.Email))
	d.Phone = strings.TrimSpace(d.Phone)
	d.Specialization = strings.TrimSpace(d.Specialization)
	d.Department = strings.TrimSpace(d.Department)
	d.Qualification = strings.TrimSpace(d.Qualification)

	switch {
	case d.FirstName == "" || d.LastName == "":
		return apperrors.Validationf("first and last name are required")
	case d.Email == "":
		return apperrors.Validationf("email is required")
	case d.Phone == "":
		return apperrors.Validationf("phone is required")
	case d.Specialization == "":
		return apperrors.Validationf("specialization is required")
	case d.Department == "":
		return apperrors.Validationf("department is required")
	case d.Qualification == "":
		return apperrors.Validationf("qualification is required")
	case d.Experience < 0 || d.Experience > maxExperienceYears:
		return apperrors.Validationf("experience must be between 0 and %d years", maxExperienceYears)
	case d.ConsultationFee < 0:
		return apperrors.Validationf("consultation fee must not be negative")
	case len(d.AvailableDays) == 0:
		return apperrors.Validationf("at least one available day is required")
	}

	for _, day := range d.AvailableDays {
		if _, ok := validWeekdays[day]; !ok {
			return apperrors.Validationf("unknown weekday %q", day)
		}
	}

	if !timeOfDayRe.MatchString(d.AvailableTime.Start) {
		return apperrors.Validationf("start time must be in HH:MM format (24-hour)")
	}
	if !timeOfDayRe.MatchString(d.AvailableTime.End) {
		return apperrors.Validationf("end time must be in HH:MM format (24-hour)")
	}

	return nil
}

// GenerateDoctorID produces a unique business key of the form
// DOC<base36 timestamp><3 random base36 chars>.
func GenerateDoctorID() string {
	const alphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"

	ts := strings.ToUpper(strconv.FormatInt(time.Now().UnixMilli(), 36))

	suffix := make([]byte, 3)
	for i := range suffix {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(alphabet))))
		if err != nil {
			// crypto/rand only fails on a broken platform source
			n = big.NewInt(int64(i))
		}
		suffix[i] = alphabet[n.Int64()]
	}

	return doctorIDPrefix + ts + string(suffix)
}
