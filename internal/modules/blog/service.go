package blog

import (
	"errors"
	"time"

	"github.com/aki-lab/blog-core/internal/models"
	"github.com/aki-lab/blog-core/internal/pkg/slug"
	"gorm.io/gorm"
)

// Service is the record store adapter for blog posts.
type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// List returns all posts, newest first.
func (s *Service) List() ([]models.BlogPostModel, error) {
	var posts []models.BlogPostModel
	return posts, s.db.Order("created_at DESC").Find(&posts).Error
}

// GetByID returns the matching post, or nil when none exists.
func (s *Service) GetByID(id string) (*models.BlogPostModel, error) {
	var post models.BlogPostModel
	if err := s.db.First(&post, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &post, nil
}

// Create inserts a new post and returns it with the generated id.
func (s *Service) Create(dto *BlogPostDTO, imagePath string) (*models.BlogPostModel, error) {
	now := timestamp()
	post := models.BlogPostModel{
		CategoryID:      dto.categoryID(),
		Name:            dto.Name,
		Slug:            slug.Slugify(dto.Name),
		Image:           imagePath,
		ImageName:       dto.ImageName,
		ImageAlt:        dto.ImageAlt,
		Description:     dto.Description,
		BDate:           dto.BDate,
		MetaTitle:       dto.MetaTitle,
		MetaKeywords:    dto.MetaKeywords,
		MetaDescription: dto.MetaDescription,
		Publish:         dto.publish(),
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	return &post, s.db.Create(&post).Error
}

// Update overwrites the row's fields wholesale. Existence is checked by
// the caller's preceding GetByID; the read-then-write pair is not
// transactional.
func (s *Service) Update(id string, dto *BlogPostDTO, imagePath string) error {
	updates := map[string]interface{}{
		"category_id":      dto.categoryID(),
		"name":             dto.Name,
		"slug":             slug.Slugify(dto.Name),
		"image":            imagePath,
		"image_name":       dto.ImageName,
		"image_alt":        dto.ImageAlt,
		"description":      dto.Description,
		"bdate":            dto.BDate,
		"meta_title":       dto.MetaTitle,
		"meta_keywords":    dto.MetaKeywords,
		"meta_description": dto.MetaDescription,
		"publish":          dto.publish(),
		"updated_at":       timestamp(),
	}
	return s.db.Model(&models.BlogPostModel{}).Where("id = ?", id).Updates(updates).Error
}

func timestamp() string {
	return time.Now().UTC().Format(time.RFC3339)
}
