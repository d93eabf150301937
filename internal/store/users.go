package store

import (
	"errors"

	"github.com/Trend4Media/AffenMitWaffen/internal/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrDuplicateEmail = errors.New("email already registered")
	ErrUserNotFound   = errors.New("user not found")
)

// UserStore persists user accounts.
type UserStore struct {
	db *gorm.DB
}

func NewUserStore(db *gorm.DB) *UserStore {
	return &UserStore{db: db}
}

// Create stores a new, inactive account. The pre-check read is an
// optimization; a concurrent register race is resolved by the unique
// index on email and reported as ErrDuplicateEmail either way.
func (s *UserStore) Create(email, passwordHash, name string) (*models.User, error) {
	var existing models.User

	err := s.db.Where("email = ?", email).First(&existing).Error

	if err == nil {
		return nil, ErrDuplicateEmail
	}

	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	user := models.User{
		Email:        email,
		PasswordHash: passwordHash,
		Name:         name,
	}

	if err := s.db.Create(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateEmail
		}
		return nil, err
	}

	return &user, nil
}

func (s *UserStore) FindByEmail(email string) (*models.User, error) {
	var user models.User

	if err := s.db.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	return &user, nil
}

func (s *UserStore) FindByID(id uint) (*models.User, error) {
	var user models.User

	if err := s.db.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	return &user, nil
}

// UserWithSystemCount pairs an account with how many systems it owns.
type UserWithSystemCount struct {
	models.User
	SystemCount int64
}

// ListWithSystemCounts returns every account, newest registration
// first, with a derived count of owned systems.
func (s *UserStore) ListWithSystemCounts() ([]UserWithSystemCount, error) {
	var users []models.User

	if err := s.db.Order("created_at DESC, id DESC").Find(&users).Error; err != nil {
		return nil, err
	}

	type countRow struct {
		UserID uint
		Count  int64
	}

	var counts []countRow

	err := s.db.Model(&models.System{}).
		Select("user_id, COUNT(*) AS count").
		Group("user_id").
		Scan(&counts).Error

	if err != nil {
		return nil, err
	}

	countByUser := make(map[uint]int64, len(counts))

	for _, row := range counts {
		countByUser[row.UserID] = row.Count
	}

	result := make([]UserWithSystemCount, 0, len(users))

	for _, user := range users {
		result = append(result, UserWithSystemCount{
			User:        user,
			SystemCount: countByUser[user.ID],
		})
	}

	return result, nil
}

func (s *UserStore) SetActive(id uint, isActive bool) (*models.User, error) {
	return s.updateFlag(id, "is_active", isActive)
}

func (s *UserStore) SetAdmin(id uint, isAdmin bool) (*models.User, error) {
	return s.updateFlag(id, "is_admin", isAdmin)
}

func (s *UserStore) updateFlag(id uint, column string, value bool) (*models.User, error) {
	user, err := s.FindByID(id)

	if err != nil {
		return nil, err
	}

	if err := s.db.Model(user).Update(column, value).Error; err != nil {
		return nil, err
	}

	return user, nil
}

// Delete removes the account and everything it owns. The cascade runs
// inside one transaction so a failure leaves the account intact.
func (s *UserStore) Delete(id uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var user models.User

		if err := tx.First(&user, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrUserNotFound
			}
			return err
		}

		systemIDs := tx.Model(&models.System{}).Select("id").Where("user_id = ?", id)

		if err := tx.Where("system_id IN (?)", systemIDs).Delete(&models.Planet{}).Error; err != nil {
			return err
		}

		if err := tx.Where("user_id = ?", id).Delete(&models.System{}).Error; err != nil {
			return err
		}

		return tx.Delete(&user).Error
	})
}

// EnsureAdmin guarantees at least one administrator exists. If no admin
// is present, the account with the given email is promoted, or created
// fresh with the given password. Called once at startup.
func (s *UserStore) EnsureAdmin(email, password string) error {
	var admin models.User

	err := s.db.Where("is_admin = ?", true).First(&admin).Error

	if err == nil {
		return nil
	}

	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	var user models.User

	err = s.db.Where("email = ?", email).First(&user).Error

	if err == nil {
		return s.db.Model(&user).Updates(map[string]interface{}{
			"is_active": true,
			"is_admin":  true,
		}).Error
	}

	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)

	if err != nil {
		return err
	}

	return s.db.Create(&models.User{
		Email:        email,
		PasswordHash: string(passwordHash),
		Name:         "Admin",
		IsActive:     true,
		IsAdmin:      true,
	}).Error
}
