package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type User struct {
	ID               string     `gorm:"primaryKey;type:uuid" json:"id"`
	Username         string     `gorm:"uniqueIndex;not null;size:254" json:"username"`
	Email            string     `gorm:"uniqueIndex;not null;size:254" json:"email"`
	Password         string     `gorm:"column:password_hash;not null" json:"-"` // Not show in JSON
	Role             Role       `gorm:"type:varchar(20);not null;default:'user'" json:"role"`
	IsStaff          bool       `gorm:"not null;default:false" json:"-"`
	IsSuperuser      bool       `gorm:"not null;default:false" json:"-"`
	FirstName        string     `gorm:"size:150" json:"first_name"`
	LastName         string     `gorm:"size:150" json:"last_name"`
	Bio              string     `gorm:"size:500" json:"bio"`
	ConfirmationCode string     `gorm:"size:64" json:"-"`
	ConfirmedAt      *time.Time `json:"confirmed_at,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`

	// Associations, only declared so AutoMigrate emits the cascading foreign keys
	Reviews       []Review       `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE;" json:"-"`
	Comments      []Comment      `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE;" json:"-"`
	RefreshTokens []RefreshToken `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE;" json:"-"`
}

// NewUser builds a user with the default role. Callers set privileges explicitly afterwards.
func NewUser(username, email string) *User {
	return &User{
		ID:       uuid.New().String(),
		Username: username,
		Email:    email,
		Role:     RoleUser,
	}
}

// BeforeCreate hook to set UUID before creating a User
func (user *User) BeforeCreate(tx *gorm.DB) (err error) {
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	return
}

func (User) TableName() string {
	return "users"
}
