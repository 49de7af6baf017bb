package domain

import "time"

// Contact is a message submitted through the site contact form.
// Records are immutable once created except for deletion.
type Contact struct {
	ID        int64     `json:"id,string" form:"id"`
	Name      string    `json:"name" form:"name"`
	Email     string    `gorm:"index" json:"email" form:"email"`
	Phone     string    `json:"phone" form:"phone"`
	Message   string    `gorm:"type:text" json:"message" form:"message"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName returns table name
func (Contact) TableName() string {
	return "contacts"
}
