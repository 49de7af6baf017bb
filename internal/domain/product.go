package domain

import "time"

// Embroidery technique values accepted for Product.EmbroideryType.
const (
	EmbroideryMachine = "Machine"
	EmbroideryHand    = "Hand"
	EmbroideryDigital = "Digital"
)

// Product is a catalog item. Descriptions are stored as flat
// per-locale columns; the image binary is kept inline and rides the
// JSON wire as base64.
type Product struct {
	ID             int64      `json:"id,string" form:"id"`
	Name           string     `gorm:"index" json:"name" form:"name"`
	Description    LocaleText `gorm:"embedded;embeddedPrefix:description_" json:"description"`
	Price          float64    `json:"price" form:"price"`
	Category       string     `gorm:"index" json:"category" form:"category"`
	EmbroideryType string     `gorm:"size:32" json:"embroidery_type" form:"embroideryType"`
	// Stock is a quantity; the list endpoint's inStock filter maps
	// true/false onto stock > 0 / stock = 0.
	Stock       int       `json:"in_stock" form:"inStock"`
	ImageURL    string    `gorm:"size:1024" json:"image_url"`
	ImageData   []byte    `json:"image_data,omitempty"`
	ContentType string    `gorm:"size:128" json:"content_type,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TableName returns table name
func (Product) TableName() string {
	return "products"
}
