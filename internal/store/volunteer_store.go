package store

import (
	"errors"
	"strings"
	"time"

	"volunteer-service/internal/model"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// Sentinel errors surfaced to the handler layer. Duplicate errors are
// produced both by the pre-insert existence checks and by the unique
// constraints themselves; the constraints are the source of truth.
var (
	ErrNotFound       = errors.New("volunteer not found")
	ErrDuplicateEmail = errors.New("email already exists")
	ErrDuplicatePhone = errors.New("phone number already exists")
	ErrDuplicate      = errors.New("email or phone number already exists")
)

const uniqueViolationCode = "23505"

// VolunteerStore owns persistence of volunteer applications against the
// volunteers table.
type VolunteerStore struct {
	db *gorm.DB
}

// NewVolunteerStore returns a store backed by the given gorm connection.
func NewVolunteerStore(db *gorm.DB) *VolunteerStore {
	return &VolunteerStore{db: db}
}

// Create inserts a new volunteer. The database assigns id, created_at and
// updated_at. A unique-constraint violation on email or phone is translated
// to the matching duplicate error.
func (s *VolunteerStore) Create(v *model.Volunteer) error {
	if err := s.db.Create(v).Error; err != nil {
		return translateDuplicate(err)
	}
	return nil
}

// FindByID looks a volunteer up by primary key.
func (s *VolunteerStore) FindByID(id uint) (*model.Volunteer, error) {
	var v model.Volunteer
	if err := s.db.First(&v, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &v, nil
}

// FindByEmail looks a volunteer up by email address.
func (s *VolunteerStore) FindByEmail(email string) (*model.Volunteer, error) {
	var v model.Volunteer
	if err := s.db.Where("email = ?", email).First(&v).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &v, nil
}

// FindByPhone looks a volunteer up by phone number.
func (s *VolunteerStore) FindByPhone(phone string) (*model.Volunteer, error) {
	var v model.Volunteer
	if err := s.db.Where("phone = ?", phone).First(&v).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &v, nil
}

// List returns at most limit volunteers starting at offset, newest first.
// created_at may collide within a second, so id breaks ties in insertion
// order.
func (s *VolunteerStore) List(limit, offset int) ([]model.Volunteer, error) {
	var volunteers []model.Volunteer
	err := s.db.
		Order("created_at DESC, id DESC").
		Limit(limit).
		Offset(offset).
		Find(&volunteers).Error
	if err != nil {
		return nil, err
	}
	return volunteers, nil
}

// Count returns the total number of volunteer records.
func (s *VolunteerStore) Count() (int64, error) {
	var total int64
	if err := s.db.Model(&model.Volunteer{}).Count(&total).Error; err != nil {
		return 0, err
	}
	return total, nil
}

// UpdateStatus sets the status of the volunteer with the given id and
// refreshes updated_at to now. No other field is ever mutated after
// creation.
func (s *VolunteerStore) UpdateStatus(id uint, status model.VolunteerStatus, now time.Time) (*model.Volunteer, error) {
	res := s.db.Model(&model.Volunteer{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":     string(status),
			"updated_at": now,
		})
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, ErrNotFound
	}

	var v model.Volunteer
	if err := s.db.First(&v, id).Error; err != nil {
		return nil, err
	}
	return &v, nil
}

// translateDuplicate maps a postgres unique-constraint violation to the
// duplicate sentinel for the field whose constraint fired. Anything else
// passes through unchanged.
func translateDuplicate(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != uniqueViolationCode {
		return err
	}
	switch {
	case strings.Contains(pgErr.ConstraintName, "email"):
		return ErrDuplicateEmail
	case strings.Contains(pgErr.ConstraintName, "phone"):
		return ErrDuplicatePhone
	default:
		return ErrDuplicate
	}
}
