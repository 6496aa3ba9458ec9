package models

// BlogPostModel is one blog post record. The backing table is named
// `categories` for compatibility with the existing database.
type BlogPostModel struct {
	ID              uint   `json:"id"               gorm:"primaryKey;autoIncrement"`
	CategoryID      int    `json:"category_id"`
	Name            string `json:"name"`
	Slug            string `json:"slug"`
	Image           string `json:"image"`
	ImageName       string `json:"image_name"`
	ImageAlt        string `json:"image_alt"`
	Description     string `json:"description"`
	BDate           string `json:"bdate"            gorm:"column:bdate"`
	MetaTitle       string `json:"meta_title"`
	MetaKeywords    string `json:"meta_keywords"`
	MetaDescription string `json:"meta_description"`
	Publish         bool   `json:"publish"`

	// Timestamps are RFC 3339 strings written by the service, not GORM
	// auto-time columns; list ordering relies on their lexical order.
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

func (BlogPostModel) TableName() string { return "categories" }
