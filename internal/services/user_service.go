package services

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/ovenfresh/pizza-order-api/internal/models"
	"gorm.io/gorm"
)

// ProfileUpdate carries the mutable profile fields. Nil pointers leave the
// stored value untouched.
type ProfileUpdate struct {
	Name    *string         `json:"name"`
	Phone   *string         `json:"phone"`
	Address *models.Address `json:"address"`
}

type UserService interface {
	CreateUser(user *models.User) error
	GetUserByEmail(email string) (*models.User, error)
	GetUserByID(id uint) (*models.User, error)
	UpdateProfile(userID uint, upd ProfileUpdate) (*models.User, error)
	VerifyEmail(token string) error
	CreateResetToken(email string) (*models.User, string, error)
	ResetPassword(token, newPassword string) error
	AdminEmails() ([]string, error)
}

type userService struct {
	db *gorm.DB
}

func NewUserService(db *gorm.DB) UserService {
	return &userService{db: db}
}

func (s *userService) CreateUser(user *models.User) error {
	var existing models.User
	if err := s.db.Where("email = ?", user.Email).First(&existing).Error; err == nil {
		return ErrUserExists
	}
	if user.EmailVerificationToken == "" {
		user.EmailVerificationToken = uuid.NewString()
	}
	return s.db.Create(user).Error
}

func (s *userService) GetUserByEmail(email string) (*models.User, error) {
	var user models.User
	if err := s.db.Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *userService) GetUserByID(id uint) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *userService) UpdateProfile(userID uint, upd ProfileUpdate) (*models.User, error) {
	user, err := s.GetUserByID(userID)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if upd.Name != nil {
		updates["name"] = *upd.Name
	}
	if upd.Phone != nil {
		updates["phone"] = *upd.Phone
	}
	if upd.Address != nil {
		updates["address_street"] = upd.Address.Street
		updates["address_city"] = upd.Address.City
		updates["address_state"] = upd.Address.State
		updates["address_zip_code"] = upd.Address.ZipCode
		updates["address_landmark"] = upd.Address.Landmark
	}
	if len(updates) == 0 {
		return user, nil
	}
	if err := s.db.Model(user).Updates(updates).Error; err != nil {
		return nil, err
	}
	return s.GetUserByID(userID)
}

func (s *userService) VerifyEmail(token string) error {
	var user models.User
	err := s.db.Where("email_verification_token = ?", token).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrInvalidToken
	}
	if err != nil {
		return err
	}
	return s.db.Model(&user).Updates(map[string]interface{}{
		"email_verified":           true,
		"email_verification_token": "",
	}).Error
}

// CreateResetToken issues a one-hour reset token for the account, returning
// the user and the raw token for delivery. A missing account is reported so
// the caller can respond uniformly regardless.
func (s *userService) CreateResetToken(email string) (*models.User, string, error) {
	user, err := s.GetUserByEmail(email)
	if err != nil {
		return nil, "", err
	}

	token := uuid.NewString()
	expires := time.Now().Add(time.Hour)
	err = s.db.Model(user).Updates(map[string]interface{}{
		"password_reset_token":   token,
		"password_reset_expires": expires,
	}).Error
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

func (s *userService) ResetPassword(token, newPassword string) error {
	var user models.User
	err := s.db.Where("password_reset_token = ? AND password_reset_expires > ?", token, time.Now()).
		First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrInvalidToken
	}
	if err != nil {
		return err
	}
	if err := user.SetPassword(newPassword); err != nil {
		return err
	}
	return s.db.Model(&user).Updates(map[string]interface{}{
		"password_hash":          user.PasswordHash,
		"password_reset_token":   "",
		"password_reset_expires": nil,
	}).Error
}

func (s *userService) AdminEmails() ([]string, error) {
	var emails []string
	err := s.db.Model(&models.User{}).Where("role = ?", models.RoleAdmin).
		Pluck("email", &emails).Error
	return emails, err
}
