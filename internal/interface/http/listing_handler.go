package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/freeads/marketplace-api/internal/application"
	"github.com/freeads/marketplace-api/internal/domain/entity"
	"github.com/freeads/marketplace-api/internal/interface/middleware"
	"github.com/freeads/marketplace-api/pkg/response"
	"github.com/freeads/marketplace-api/pkg/validation"
)

type ListingHandler struct {
	Svc    *application.ListingService
	Logger *logrus.Logger
}

func NewListingHandler(svc *application.ListingService, logger *logrus.Logger) *ListingHandler {
	return &ListingHandler{Svc: svc, Logger: logger}
}

// Fields are bound loosely; presence validation lives in the service so the
// error can name every missing field at once. Price stays untyped because
// the posting form sends it as either a number or a numeric string.
type createAdvertisementRequest struct {
	Category    string   `json:"category"`
	SubCategory string   `json:"subCategory"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Price       any      `json:"price"`
	Location    string   `json:"location"`
	Phone       string   `json:"phone"`
	Images      []string `json:"images"`
}

func adToJSON(ad *entity.Advertisement) gin.H {
	return gin.H{
		"id":          ad.ID,
		"category":    ad.Category,
		"subCategory": ad.SubCategory,
		"title":       ad.Title,
		"description": ad.Description,
		"price":       ad.Price,
		"location":    ad.Location,
		"phone":       ad.Phone,
		"images":      ad.Images,
		"user":        ad.UserID,
		"createdAt":   ad.CreatedAt,
		"updatedAt":   ad.UpdatedAt,
	}
}

// Create POST /advertisements
func (h *ListingHandler) Create(c *gin.Context) {
	var req createAdvertisementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	ad, err := h.Svc.CreateAdvertisement(c.Request.Context(), c.GetString(middleware.CtxUserIDKey), application.CreateAdvertisementInput{
		Category:    req.Category,
		SubCategory: req.SubCategory,
		Title:       req.Title,
		Description: req.Description,
		Price:       req.Price,
		Location:    req.Location,
		Phone:       req.Phone,
		Images:      req.Images,
	})
	if err != nil {
		writeServiceError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"advertisement": adToJSON(ad)}, "Advertisement created successfully", nil)
}

// List GET /advertisements?category=&q=&limit=&offset=
// A non-empty q switches to Elasticsearch full-text search.
func (h *ListingHandler) List(c *gin.Context) {
	limit, _ := strconv.Atoi(c.Query("limit"))
	offset, _ := strconv.Atoi(c.Query("offset"))

	if q := c.Query("q"); q != "" {
		hits, err := h.Svc.SearchAdvertisements(c.Request.Context(), q, limit)
		if err != nil {
			writeServiceError(c, h.Logger, err)
			return
		}
		response.Success(c, http.StatusOK, gin.H{"advertisements": hits}, "search results", nil)
		return
	}

	ads, err := h.Svc.ListAdvertisements(c.Request.Context(), c.Query("category"), limit, offset)
	if err != nil {
		writeServiceError(c, h.Logger, err)
		return
	}
	out := make([]gin.H, 0, len(ads))
	for _, ad := range ads {
		out = append(out, adToJSON(ad))
	}
	response.Success(c, http.StatusOK, gin.H{"advertisements": out}, "advertisements", nil)
}

// Get GET /advertisements/:id
func (h *ListingHandler) Get(c *gin.Context) {
	ad, err := h.Svc.GetAdvertisement(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeServiceError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"advertisement": adToJSON(ad)}, "advertisement", nil)
}
