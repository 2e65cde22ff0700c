package repository

import (
	"errors"

	"gorm.io/gorm"

	"github.com/campuscare-app/CampusCare/app/models"
)

// userRepository implements the UserRepository interface
type userRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new user repository instance
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) guard() error {
	if r.db == nil {
		return NewStoreError(KindConfig, errors.New("primary store not configured"))
	}
	return nil
}

// Create creates a new user in the database
func (r *userRepository) Create(user *models.User) error {
	if err := r.guard(); err != nil {
		return err
	}
	if err := r.db.Create(user).Error; err != nil {
		return Classify(err)
	}
	return nil
}

// GetByID retrieves a user by their ID
func (r *userRepository) GetByID(id uint) (*models.User, error) {
	if err := r.guard(); err != nil {
		return nil, err
	}
	var user models.User
	if err := r.db.First(&user, id).Error; err != nil {
		return nil, Classify(err)
	}
	return &user, nil
}

// GetByEmail retrieves a user by their email address
func (r *userRepository) GetByEmail(email string) (*models.User, error) {
	if err := r.guard(); err != nil {
		return nil, err
	}
	var user models.User
	if err := r.db.Where("email = ?", email).First(&user).Error; err != nil {
		return nil, Classify(err)
	}
	return &user, nil
}

// GetByResetToken retrieves a user by their password reset token
func (r *userRepository) GetByResetToken(token string) (*models.User, error) {
	if err := r.guard(); err != nil {
		return nil, err
	}
	var user models.User
	if err := r.db.Where("reset_token = ?", token).First(&user).Error; err != nil {
		return nil, Classify(err)
	}
	return &user, nil
}

// Update updates an existing user in the database
func (r *userRepository) Update(user *models.User) error {
	if err := r.guard(); err != nil {
		return err
	}
	if err := r.db.Save(user).Error; err != nil {
		return Classify(err)
	}
	return nil
}

// List retrieves a paginated list of users
func (r *userRepository) List(offset, limit int) ([]models.User, error) {
	if err := r.guard(); err != nil {
		return nil, err
	}
	var users []models.User
	if err := r.db.Order("created_at DESC").Offset(offset).Limit(limit).Find(&users).Error; err != nil {
		return nil, Classify(err)
	}
	return users, nil
}

// Count returns the total number of users
func (r *userRepository) Count() (int64, error) {
	if err := r.guard(); err != nil {
		return 0, err
	}
	var count int64
	if err := r.db.Model(&models.User{}).Count(&count).Error; err != nil {
		return 0, Classify(err)
	}
	return count, nil
}
