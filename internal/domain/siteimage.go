package domain

import "time"

// SiteImage is a named image placement ("slot") on the storefront,
// e.g. "home-hero". A location holds at most one record; uploading to
// an existing location replaces the stored binary in place.
type SiteImage struct {
	ID          int64     `json:"id,string" form:"id"`
	Name        string    `json:"name" form:"name"`
	Location    string    `gorm:"uniqueIndex;size:128" json:"location" form:"location"`
	ImageData   []byte    `json:"image_data,omitempty"`
	ContentType string    `gorm:"size:128" json:"content_type"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TableName returns table name
func (SiteImage) TableName() string {
	return "site_images"
}
