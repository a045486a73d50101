package services

import (
	"errors"
	"fmt"
	"html"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/praharilabs/prahari-backend/internal/config"
	"github.com/praharilabs/prahari-backend/internal/dto"
	"github.com/praharilabs/prahari-backend/internal/models"
	"github.com/praharilabs/prahari-backend/internal/policy"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrPhoneTaken = errors.New("This phone number is already registered")
	// ErrInvalidCredentials is returned for both unknown phone and wrong
	// password so callers cannot enumerate accounts.
	ErrInvalidCredentials = errors.New("Invalid phone number or password")
	ErrAccountBanned      = errors.New("Account suspended. Contact support.")

	ErrNameLength   = errors.New("Name must be 2–80 characters")
	ErrInvalidPhone = errors.New("Enter a valid 10-digit Indian mobile number")
)

// Compared against when the phone is unknown so login takes the same time
// either way.
const dummyBcryptHash = "$2a$12$R9h/cIPz0gi.URNNX3kh2OPST9/PgBkqquzi.Ss7KIUgO2t0jWMUW"

const bcryptCost = 12

var phonePattern = regexp.MustCompile(`^[6-9]\d{9}$`)

type AuthService struct {
	db  *gorm.DB
	cfg *config.Config
}

func NewAuthService(db *gorm.DB, cfg *config.Config) *AuthService {
	return &AuthService{db: db, cfg: cfg}
}

func (s *AuthService) Register(req *dto.RegisterRequest) (*dto.AuthResponse, error) {
	name := strings.TrimSpace(req.Name)
	if n := utf8.RuneCountInString(name); n < 2 || n > 80 {
		return nil, ErrNameLength
	}

	phone := NormalizePhone(req.Phone)
	if !phonePattern.MatchString(phone) {
		return nil, ErrInvalidPhone
	}

	if err := policy.ValidatePassword(req.Password); err != nil {
		return nil, err
	}

	var existing models.User
	if err := s.db.Where("phone = ?", phone).First(&existing).Error; err == nil {
		return nil, ErrPhoneTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check phone: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := models.User{
		ID:           uuid.New(),
		Name:         sanitize(name, 80),
		Phone:        phone,
		PasswordHash: string(hash),
		Rank:         9999,
		Badge:        "⚔️",
		Title:        "TRUTH WARRIOR",
	}

	if err := s.db.Create(&user).Error; err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	token, err := s.generateToken(&user)
	if err != nil {
		return nil, err
	}

	return &dto.AuthResponse{
		User:    mapUserToResponse(&user),
		Token:   token,
		Message: "Account created successfully",
	}, nil
}

func (s *AuthService) Login(req *dto.LoginRequest) (*dto.AuthResponse, error) {
	if req.Phone == "" || req.Password == "" {
		return nil, ErrInvalidCredentials
	}

	phone := NormalizePhone(req.Phone)

	var user models.User
	err := s.db.Where("phone = ?", phone).First(&user).Error
	found := err == nil
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	// Always run the compare, against a dummy hash if the user is unknown.
	hash := dummyBcryptHash
	if found {
		hash = user.PasswordHash
	}
	compareErr := bcrypt.CompareHashAndPassword([]byte(hash), []byte(req.Password))

	if !found || compareErr != nil {
		return nil, ErrInvalidCredentials
	}
	if user.IsBanned {
		return nil, ErrAccountBanned
	}

	now := time.Now().UTC()
	if err := s.db.Model(&user).UpdateColumn("last_login", now).Error; err != nil {
		return nil, fmt.Errorf("failed to update last login: %w", err)
	}
	user.LastLogin = &now

	token, err := s.generateToken(&user)
	if err != nil {
		return nil, err
	}

	return &dto.AuthResponse{User: mapUserToResponse(&user), Token: token}, nil
}

func (s *AuthService) generateToken(user *models.User) (string, error) {
	claims := jwt.MapClaims{
		"sub": user.ID.String(),
		"iat": time.Now().Unix(),
		"exp": time.Now().Add(s.cfg.JWTExpiry).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.cfg.JWTSecret))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// NormalizePhone strips whitespace from a submitted phone number.
func NormalizePhone(phone string) string {
	return strings.Join(strings.Fields(phone), "")
}

// IsRegistrationError reports whether err is a user-correctable registration
// validation failure.
func IsRegistrationError(err error) bool {
	return errors.Is(err, ErrNameLength) ||
		errors.Is(err, ErrInvalidPhone) ||
		errors.Is(err, policy.ErrPasswordLength) ||
		errors.Is(err, policy.ErrPasswordWeak)
}

func mapUserToResponse(u *models.User) dto.UserResponse {
	return dto.UserResponse{
		ID:        u.ID,
		Name:      u.Name,
		Phone:     u.Phone,
		Pts:       u.Pts,
		Reports:   u.Reports,
		Rank:      u.Rank,
		Badge:     u.Badge,
		Title:     u.Title,
		City:      u.City,
		Verified:  u.Verified,
		CreatedAt: u.CreatedAt,
		LastLogin: u.LastLogin,
	}
}

// sanitize trims, HTML-escapes and truncates free-text input before storage.
func sanitize(s string, maxLen int) string {
	escaped := html.EscapeString(strings.TrimSpace(s))
	runes := []rune(escaped)
	if len(runes) > maxLen {
		return string(runes[:maxLen])
	}
	return escaped
}
