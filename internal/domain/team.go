package domain

import "time"

// TeamMember is an entry on the about-us roster. Role and bio carry
// per-locale translations; Order controls display position (ascending).
type TeamMember struct {
	ID          int64      `json:"id,string" form:"id"`
	Name        string     `json:"name" form:"name"`
	Role        LocaleText `gorm:"embedded;embeddedPrefix:role_" json:"role"`
	Bio         LocaleText `gorm:"embedded;embeddedPrefix:bio_" json:"bio"`
	ImageData   []byte     `json:"image_data,omitempty"`
	ContentType string     `gorm:"size:128" json:"content_type,omitempty"`
	Order       int        `gorm:"column:display_order" json:"order" form:"order"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// TableName returns table name
func (TeamMember) TableName() string {
	return "team_members"
}
