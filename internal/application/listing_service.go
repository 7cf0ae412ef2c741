package application

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/sirupsen/logrus"

	"github.com/freeads/marketplace-api/internal/domain/entity"
	repo "github.com/freeads/marketplace-api/internal/domain/repository"
	"github.com/freeads/marketplace-api/pkg/helpers"
	"github.com/freeads/marketplace-api/pkg/mailer"
)

// ListingService validates and persists advertisement submissions and serves
// the browse/detail/search reads. Elasticsearch and the email queue are
// optional collaborators; a nil client simply disables that side effect.
type ListingService struct {
	Ads         repo.AdvertisementRepository
	Users       repo.UserRepository
	Logger      *logrus.Logger
	ES          *elasticsearch.Client
	ESAdsIndex  string
	Pub         *helpers.RabbitPublisher
	MailEnabled bool
}

func NewListingService(ads repo.AdvertisementRepository, users repo.UserRepository, logger *logrus.Logger, es *elasticsearch.Client, esAdsIndex string, pub *helpers.RabbitPublisher, mailEnabled bool) *ListingService {
	return &ListingService{
		Ads:         ads,
		Users:       users,
		Logger:      logger,
		ES:          es,
		ESAdsIndex:  esAdsIndex,
		Pub:         pub,
		MailEnabled: mailEnabled,
	}
}

// CreateAdvertisementInput carries the raw submission. Price is declared any
// because the posting form historically sent it as either a number or a
// numeric string; the service coerces it.
type CreateAdvertisementInput struct {
	Category    string
	SubCategory string
	Title       string
	Description string
	Price       any
	Location    string
	Phone       string
	Images      []string
}

// CreateAdvertisement persists a listing owned by userID. Presence of every
// field is checked here; value constraints (length bounds, price sign, phone
// pattern, image count) are enforced by the store schema and surface as
// SchemaViolationError.
func (s *ListingService) CreateAdvertisement(ctx context.Context, userID string, in CreateAdvertisementInput) (*entity.Advertisement, error) {
	if userID == "" {
		return nil, ErrUnauthorized
	}

	missing := missingFields(in)
	if len(missing) > 0 {
		return nil, NewValidationError("Missing required fields: " + strings.Join(missing, ", "))
	}

	price, err := coercePrice(in.Price)
	if err != nil {
		return nil, err
	}

	ad := &entity.Advertisement{
		Category:    in.Category,
		SubCategory: in.SubCategory,
		Title:       in.Title,
		Description: in.Description,
		Price:       price,
		Location:    in.Location,
		Phone:       in.Phone,
		Images:      in.Images,
		UserID:      userID,
	}
	if err := s.Ads.Create(ctx, ad); err != nil {
		return nil, err
	}

	s.indexAd(ctx, ad)
	s.notifyPosted(ctx, ad)
	return ad, nil
}

func missingFields(in CreateAdvertisementInput) []string {
	var missing []string
	add := func(name string, absent bool) {
		if absent {
			missing = append(missing, name)
		}
	}
	add("category", in.Category == "")
	add("subCategory", in.SubCategory == "")
	add("title", in.Title == "")
	add("description", in.Description == "")
	add("price", in.Price == nil || in.Price == "")
	add("location", in.Location == "")
	add("phone", in.Phone == "")
	add("images", len(in.Images) == 0)
	return missing
}

func coercePrice(v any) (float64, error) {
	switch p := v.(type) {
	case float64:
		return p, nil
	case int:
		return float64(p), nil
	case json.Number:
		f, err := p.Float64()
		if err != nil {
			return 0, NewValidationError("Price must be a number")
		}
		return f, nil
	case string:
		f, err := strconv.ParseFloat(p, 64)
		if err != nil {
			return 0, NewValidationError("Price must be a number")
		}
		return f, nil
	default:
		return 0, NewValidationError("Price must be a number")
	}
}

// ListAdvertisements returns listings newest-first for the browse grid.
func (s *ListingService) ListAdvertisements(ctx context.Context, category string, limit, offset int) ([]*entity.Advertisement, error) {
	if limit <= 0 || limit > 50 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return s.Ads.List(ctx, category, limit, offset)
}

// GetAdvertisement returns a single listing for the detail page.
func (s *ListingService) GetAdvertisement(ctx context.Context, id string) (*entity.Advertisement, error) {
	return s.Ads.GetByID(ctx, id)
}

func (s *ListingService) indexAd(ctx context.Context, ad *entity.Advertisement) {
	if s.ES == nil || s.ESAdsIndex == "" {
		return
	}
	doc := map[string]any{
		"id":           ad.ID,
		"category":     ad.Category,
		"sub_category": ad.SubCategory,
		"title":        ad.Title,
		"description":  ad.Description,
		"price":        ad.Price,
		"location":     ad.Location,
		"created_at":   ad.CreatedAt.Format(time.RFC3339Nano),
	}
	b, _ := json.Marshal(doc)
	req := esapi.IndexRequest{Index: s.ESAdsIndex, DocumentID: ad.ID, Body: strings.NewReader(string(b)), Refresh: "false"}
	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := req.Do(c, s.ES)
	if err != nil {
		s.Logger.WithError(err).WithField("ad_id", ad.ID).Warn("es index failed")
		return
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() {
		s.Logger.WithField("status", res.Status()).WithField("ad_id", ad.ID).Warn("es index response error")
	}
}

func (s *ListingService) notifyPosted(ctx context.Context, ad *entity.Advertisement) {
	if s.Pub == nil || !s.MailEnabled {
		return
	}
	owner, err := s.Users.GetByID(ctx, ad.UserID)
	if err != nil || owner.Email == "" {
		return
	}
	job := mailer.EmailJob{
		To:       owner.Email,
		Template: mailer.TemplateAdPosted,
		Data: map[string]any{
			"Name":     owner.Name,
			"Title":    ad.Title,
			"Category": ad.Category,
			"Price":    fmt.Sprintf("%.2f", ad.Price),
			"Location": ad.Location,
		},
	}
	if err := s.Pub.PublishJSON(ctx, job); err != nil {
		s.Logger.WithError(err).WithField("ad_id", ad.ID).Warn("failed to enqueue ad posted email")
	}
}

// SearchAdvertisements performs a multi_match query over the listing index.
func (s *ListingService) SearchAdvertisements(ctx context.Context, q string, size int) ([]map[string]any, error) {
	if s.ES == nil || s.ESAdsIndex == "" {
		return []map[string]any{}, nil
	}
	if size <= 0 || size > 50 {
		size = 20
	}
	query := map[string]any{
		"query": map[string]any{
			"multi_match": map[string]any{
				"query":  q,
				"fields": []string{"title^2", "description", "category", "location"},
			},
		},
		"size": size,
	}
	b, _ := json.Marshal(query)

	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	res, err := s.ES.Search(
		s.ES.Search.WithContext(c),
		s.ES.Search.WithIndex(s.ESAdsIndex),
		s.ES.Search.WithBody(strings.NewReader(string(b))),
	)
	if err != nil {
		return nil, err
	}
	defer func() { _ = res.Body.Close() }()

	var parsed struct {
		Hits struct {
			Hits []struct {
				ID     string         `json:"_id"`
				Source map[string]any `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, err
	}

	out := make([]map[string]any, 0, len(parsed.Hits.Hits))
	for _, h := range parsed.Hits.Hits {
		out = append(out, h.Source)
	}
	return out, nil
}
