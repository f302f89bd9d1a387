package models

import "time"

type Comment struct {
	ID       int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	Text     string    `json:"text" gorm:"not null;type:text"`
	AuthorID string    `json:"-" gorm:"type:uuid;not null;index"`
	ReviewID int64     `json:"-" gorm:"not null;index"`
	PubDate  time.Time `json:"pub_date" gorm:"not null;autoCreateTime;<-:create"`

	// Associations
	Author User `json:"-" gorm:"foreignKey:AuthorID"`
}

func (Comment) TableName() string {
	return "comments"
}
