package models

import "time"

// Review is unique per (author, title); the composite index backs the check-and-insert.
type Review struct {
	ID       int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	Text     string    `json:"text" gorm:"not null;type:text"`
	Score    int       `json:"score" gorm:"not null;check:chk_reviews_score,score >= 0 AND score <= 10"`
	AuthorID string    `json:"-" gorm:"type:uuid;not null;uniqueIndex:idx_reviews_author_title"`
	TitleID  int64     `json:"-" gorm:"not null;uniqueIndex:idx_reviews_author_title;index"`
	PubDate  time.Time `json:"pub_date" gorm:"not null;autoCreateTime;<-:create"`

	// Associations
	Author   User      `json:"-" gorm:"foreignKey:AuthorID"`
	Comments []Comment `json:"-" gorm:"foreignKey:ReviewID;constraint:OnDelete:CASCADE;"`
}

func (Review) TableName() string {
	return "reviews"
}
