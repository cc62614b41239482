package model

import "time"

// AccessToken is a single issued bearer credential. A user may hold several
// concurrently valid tokens; deleting a row revokes exactly that token and
// leaves the user's other tokens untouched.
type AccessToken struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"user_id" gorm:"not null;index"`
	Name      string    `json:"name" gorm:"size:255;not null"`
	Token     string    `json:"-" gorm:"uniqueIndex;size:64;not null"` // token id (jti), not the signed value
	CreatedAt time.Time `json:"created_at"`

	// Relations
	User User `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}
