package blog

import (
	"errors"
	"net/http"

	"github.com/aki-lab/blog-core/internal/modules/upload"
	"github.com/aki-lab/blog-core/internal/pkg/response"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const notFoundMessage = "Blog post not found"

type Handler struct {
	svc    *Service
	images *upload.Manager
	log    *zap.Logger
}

func NewHandler(svc *Service, images *upload.Manager, log *zap.Logger) *Handler {
	return &Handler{svc: svc, images: images, log: log}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	g := rg.Group("/blog")
	g.GET("", h.list)
	g.GET("/:id", h.get)
	g.POST("", h.create)
	g.PUT("/:id", h.update)
}

func (h *Handler) list(c *gin.Context) {
	posts, err := h.svc.List()
	if err != nil {
		h.log.Error("list posts", zap.Error(err))
		response.InternalError(c)
		return
	}
	response.OK(c, posts)
}

func (h *Handler) get(c *gin.Context) {
	post, err := h.svc.GetByID(c.Param("id"))
	if err != nil {
		h.log.Error("get post", zap.String("id", c.Param("id")), zap.Error(err))
		response.InternalError(c)
		return
	}
	if post == nil {
		response.NotFound(c, notFoundMessage)
		return
	}
	response.OK(c, post)
}

func (h *Handler) create(c *gin.Context) {
	var dto BlogPostDTO
	if err := c.ShouldBind(&dto); err != nil {
		h.log.Error("bind create form", zap.Error(err))
		response.InternalError(c)
		return
	}

	imagePath := ""
	if fh, err := c.FormFile("image"); err == nil {
		imagePath, err = h.images.Save(fh, dto.ImageName)
		if err != nil {
			h.log.Error("save image", zap.Error(err))
			response.InternalError(c)
			return
		}
	} else if !errors.Is(err, http.ErrMissingFile) {
		h.log.Error("read image field", zap.Error(err))
		response.InternalError(c)
		return
	}

	post, err := h.svc.Create(&dto, imagePath)
	if err != nil {
		h.log.Error("insert post", zap.Error(err))
		response.InternalError(c)
		return
	}
	response.OKCreated(c, "Successfully created", post.ID)
}

// update reconciles three possibly-independent changes: a new file
// upload, a rename of the existing file, or neither. The current row is
// read first because the image manager needs the stored path.
func (h *Handler) update(c *gin.Context) {
	id := c.Param("id")

	var dto BlogPostDTO
	if err := c.ShouldBind(&dto); err != nil {
		h.log.Error("bind update form", zap.Error(err))
		response.InternalError(c)
		return
	}

	post, err := h.svc.GetByID(id)
	if err != nil {
		h.log.Error("read post before update", zap.String("id", id), zap.Error(err))
		response.InternalError(c)
		return
	}
	if post == nil {
		response.NotFound(c, notFoundMessage)
		return
	}

	imagePath := post.Image
	fh, ferr := c.FormFile("image")
	switch {
	case ferr == nil:
		imagePath, err = h.images.Replace(fh, post.Image, dto.ImageName)
	case errors.Is(ferr, http.ErrMissingFile):
		if dto.ImageName != "" {
			imagePath, err = h.images.Rename(post.Image, dto.ImageName)
		}
	default:
		err = ferr
	}
	if err != nil {
		h.log.Error("reconcile image", zap.String("id", id), zap.Error(err))
		response.InternalError(c)
		return
	}

	if err := h.svc.Update(id, &dto, imagePath); err != nil {
		h.log.Error("update post", zap.String("id", id), zap.Error(err))
		response.InternalError(c)
		return
	}
	response.OKMessage(c, "Successfully updated")
}
