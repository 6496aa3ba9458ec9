package blog

import (
	"strconv"
	"strings"
)

// BlogPostDTO carries the multipart form fields of create and update
// requests. Everything is bound as a string and passed through without
// validation; the store persists whatever arrives.
type BlogPostDTO struct {
	CategoryID      string `form:"category_id"`
	Name            string `form:"name"`
	ImageName       string `form:"image_name"`
	ImageAlt        string `form:"image_alt"`
	Description     string `form:"description"`
	BDate           string `form:"bdate"`
	MetaTitle       string `form:"meta_title"`
	MetaKeywords    string `form:"meta_keywords"`
	MetaDescription string `form:"meta_description"`
	Publish         string `form:"publish"`
}

// categoryID converts the raw form value leniently; garbage becomes 0.
func (d *BlogPostDTO) categoryID() int {
	v, _ := strconv.Atoi(strings.TrimSpace(d.CategoryID))
	return v
}

// publish accepts the checkbox value "on" as well as "true"/"1".
func (d *BlogPostDTO) publish() bool {
	switch strings.ToLower(strings.TrimSpace(d.Publish)) {
	case "on", "true", "1":
		return true
	}
	return false
}
