package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sahilchouksey/dashboard-api/model"
	"golang.org/x/sync/errgroup"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrHomepageNotFound = errors.New("homepage not found")
	ErrFAQNotFound      = errors.New("faq not found")
	ErrNoFieldsToUpdate = errors.New("no valid fields to update")
)

// HomepageService manages the per-language homepage content and its FAQs
type HomepageService struct {
	db *gorm.DB
}

// NewHomepageService creates a new homepage service
func NewHomepageService(db *gorm.DB) *HomepageService {
	return &HomepageService{db: db}
}

// HeroInput is the hero section of a content update
type HeroInput struct {
	Title           string `json:"title" validate:"notblank"`
	Subtitle        string `json:"subtitle" validate:"notblank"`
	BackgroundImage string `json:"backgroundImage"`
	CTAText         string `json:"ctaText"`
	CTALink         string `json:"ctaLink"`
}

// AboutInput is the about section of a content update
type AboutInput struct {
	Title    string          `json:"title" validate:"notblank"`
	Content  string          `json:"content" validate:"notblank"`
	Image    string          `json:"image"`
	Features json.RawMessage `json:"features"`
}

// ContactInput is the contact section of a content update
type ContactInput struct {
	Email        string          `json:"email" validate:"notblank"`
	Phone        string          `json:"phone"`
	Address      string          `json:"address"`
	Hours        string          `json:"hours"`
	Description  string          `json:"description"`
	SupportEmail string          `json:"supportEmail"`
	SalesEmail   string          `json:"salesEmail"`
	SocialLinks  json.RawMessage `json:"socialLinks"`
}

// FAQInput is one FAQ of a bulk content update
type FAQInput struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
	Order    int    `json:"order"`
	IsActive *bool  `json:"isActive"`
}

// ContentInput replaces the content of one language. A nil FAQs slice keeps
// the existing FAQs, an empty one removes them all.
type ContentInput struct {
	Language string       `json:"language" validate:"notblank"`
	Hero     HeroInput    `json:"hero"`
	About    AboutInput   `json:"about"`
	Contact  ContactInput `json:"contact"`
	FAQs     []FAQInput   `json:"faqs"`
}

// CreateFAQInput adds one FAQ to the homepage of Language. Order 0 appends.
type CreateFAQInput struct {
	Language string `json:"language"`
	Question string `json:"question"`
	Answer   string `json:"answer"`
	Order    int    `json:"order"`
	IsActive *bool  `json:"isActive"`
}

// UpdateFAQInput is a partial FAQ update, nil fields are left untouched
type UpdateFAQInput struct {
	Question *string `json:"question"`
	Answer   *string `json:"answer"`
	Order    *int    `json:"order"`
	IsActive *bool   `json:"isActive"`
}

// HeroContent is the hero section as served to the site
type HeroContent struct {
	ID              string    `json:"id"`
	Title           string    `json:"title"`
	Subtitle        string    `json:"subtitle"`
	BackgroundImage *string   `json:"backgroundImage"`
	CTAText         *string   `json:"ctaText"`
	CTALink         *string   `json:"ctaLink"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// AboutContent is the about section as served to the site
type AboutContent struct {
	ID        string          `json:"id"`
	Title     string          `json:"title"`
	Content   string          `json:"content"`
	Image     *string         `json:"image"`
	Features  json.RawMessage `json:"features"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

// ContactContent is the contact section as served to the site
type ContactContent struct {
	ID           string          `json:"id"`
	Email        string          `json:"email"`
	Phone        *string         `json:"phone"`
	Address      *string         `json:"address"`
	Hours        *string         `json:"hours"`
	Description  *string         `json:"description"`
	SupportEmail *string         `json:"supportEmail"`
	SalesEmail   *string         `json:"salesEmail"`
	SocialLinks  json.RawMessage `json:"socialLinks"`
	CreatedAt    time.Time       `json:"createdAt"`
	UpdatedAt    time.Time       `json:"updatedAt"`
}

// FAQContent is one FAQ as served to the site
type FAQContent struct {
	ID        string    `json:"id"`
	Question  string    `json:"question"`
	Answer    string    `json:"answer"`
	Order     int       `json:"order"`
	IsActive  bool      `json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// HomepageContent is the full page for one language
type HomepageContent struct {
	ID        string          `json:"id"`
	Language  string          `json:"language"`
	Hero      *HeroContent    `json:"hero"`
	About     *AboutContent   `json:"about"`
	Contact   *ContactContent `json:"contact"`
	FAQs      []FAQContent    `json:"faqs"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
	Version   int             `json:"version"`
}

// withSections preloads the 1:1 sections of a homepage query
func withSections(db *gorm.DB) *gorm.DB {
	return db.Preload("Hero").Preload("About").Preload("Contact")
}

// GetByLanguage returns the active homepage of language with its active FAQs.
// The page and the FAQs are read concurrently.
func (s *HomepageService) GetByLanguage(ctx context.Context, language string) (*HomepageContent, error) {
	var (
		homepage model.Homepage
		faqs     []model.HomepageFAQ
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return withSections(s.db.WithContext(gctx)).
			Where("language = ? AND is_active = ?", language, true).
			Take(&homepage).Error
	})
	g.Go(func() error {
		db := s.db.WithContext(gctx)
		homepageID := db.Model(&model.Homepage{}).Select("id").Where("language = ?", language)
		return db.Where("homepage_id = (?) AND is_active = ?", homepageID, true).
			Order("order_index ASC, id ASC").
			Find(&faqs).Error
	})

	if err := g.Wait(); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrHomepageNotFound
		}
		return nil, fmt.Errorf("failed to fetch homepage: %w", err)
	}

	return toHomepageContent(&homepage, faqs), nil
}

// UpsertContent writes the page for in.Language in one transaction: the
// homepage row is created (version 1) or its version bumped, each section is
// upserted on homepage_id, and the FAQs are replaced when supplied. The
// committed page is read back with all of its FAQs. created reports whether
// the homepage row was new.
func (s *HomepageService) UpsertContent(ctx context.Context, in ContentInput) (content *HomepageContent, created bool, err error) {
	language := strings.TrimSpace(in.Language)
	var homepageID uint

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var homepage model.Homepage
		err := tx.Select("id", "version").Where("language = ?", language).Take(&homepage).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			homepage = model.Homepage{Language: language, Version: 1, IsActive: true}
			if err := tx.Create(&homepage).Error; err != nil {
				return fmt.Errorf("failed to create homepage: %w", err)
			}
			created = true
		case err != nil:
			return fmt.Errorf("failed to look up homepage: %w", err)
		default:
			err := tx.Model(&model.Homepage{}).
				Where("id = ?", homepage.ID).
				Updates(map[string]interface{}{
					"version":    gorm.Expr("version + ?", 1),
					"updated_at": time.Now(),
				}).Error
			if err != nil {
				return fmt.Errorf("failed to bump homepage version: %w", err)
			}
		}
		homepageID = homepage.ID

		hero := &model.HomepageHero{
			HomepageID:      homepageID,
			Title:           strings.TrimSpace(in.Hero.Title),
			Subtitle:        strings.TrimSpace(in.Hero.Subtitle),
			BackgroundImage: nullable(in.Hero.BackgroundImage),
			CTAText:         nullable(in.Hero.CTAText),
			CTALink:         nullable(in.Hero.CTALink),
		}
		if err := upsertSection(tx, hero, "title", "subtitle", "background_image", "cta_text", "cta_link"); err != nil {
			return fmt.Errorf("failed to upsert hero section: %w", err)
		}

		features, err := jsonOr(in.About.Features, "[]")
		if err != nil {
			return fmt.Errorf("failed to encode about features: %w", err)
		}
		about := &model.HomepageAbout{
			HomepageID: homepageID,
			Title:      strings.TrimSpace(in.About.Title),
			Content:    strings.TrimSpace(in.About.Content),
			Image:      nullable(in.About.Image),
			Features:   features,
		}
		if err := upsertSection(tx, about, "title", "content", "image", "features"); err != nil {
			return fmt.Errorf("failed to upsert about section: %w", err)
		}

		socialLinks, err := jsonOr(in.Contact.SocialLinks, "{}")
		if err != nil {
			return fmt.Errorf("failed to encode social links: %w", err)
		}
		contact := &model.HomepageContact{
			HomepageID:   homepageID,
			Email:        strings.TrimSpace(in.Contact.Email),
			Phone:        nullable(in.Contact.Phone),
			Address:      nullable(in.Contact.Address),
			Hours:        nullable(in.Contact.Hours),
			Description:  nullable(in.Contact.Description),
			SupportEmail: nullable(in.Contact.SupportEmail),
			SalesEmail:   nullable(in.Contact.SalesEmail),
			SocialLinks:  socialLinks,
		}
		if err := upsertSection(tx, contact, "email", "phone", "address", "hours", "description", "support_email", "sales_email", "social_links"); err != nil {
			return fmt.Errorf("failed to upsert contact section: %w", err)
		}

		if in.FAQs != nil {
			if err := replaceFAQs(tx, homepageID, in.FAQs); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, false, err
	}

	content, err = s.load(ctx, homepageID)
	if err != nil {
		return nil, false, err
	}
	return content, created, nil
}

// upsertSection inserts a 1:1 section or, when the homepage already has one,
// overwrites columns and updated_at
func upsertSection(tx *gorm.DB, section interface{}, columns ...string) error {
	return tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "homepage_id"}},
		DoUpdates: clause.AssignmentColumns(append(columns, "updated_at")),
	}).Create(section).Error
}

// replaceFAQs deletes every FAQ of the homepage and inserts in. Entries
// without a question or an answer are skipped, a zero order falls back to
// the position in the list.
func replaceFAQs(tx *gorm.DB, homepageID uint, in []FAQInput) error {
	if err := tx.Where("homepage_id = ?", homepageID).Delete(&model.HomepageFAQ{}).Error; err != nil {
		return fmt.Errorf("failed to clear faqs: %w", err)
	}

	faqs := make([]model.HomepageFAQ, 0, len(in))
	for i, f := range in {
		question, answer := strings.TrimSpace(f.Question), strings.TrimSpace(f.Answer)
		if question == "" || answer == "" {
			continue
		}
		order := f.Order
		if order == 0 {
			order = i + 1
		}
		faqs = append(faqs, model.HomepageFAQ{
			HomepageID: homepageID,
			Question:   question,
			Answer:     answer,
			OrderIndex: order,
			IsActive:   boolOr(f.IsActive, true),
		})
	}
	if len(faqs) == 0 {
		return nil
	}
	if err := tx.Create(&faqs).Error; err != nil {
		return fmt.Errorf("failed to insert faqs: %w", err)
	}
	return nil
}

// load reads a homepage by id with every FAQ, active or not
func (s *HomepageService) load(ctx context.Context, homepageID uint) (*HomepageContent, error) {
	var (
		homepage model.Homepage
		faqs     []model.HomepageFAQ
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return withSections(s.db.WithContext(gctx)).Take(&homepage, homepageID).Error
	})
	g.Go(func() error {
		return s.db.WithContext(gctx).
			Where("homepage_id = ?", homepageID).
			Order("order_index ASC, id ASC").
			Find(&faqs).Error
	})

	if err := g.Wait(); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrHomepageNotFound
		}
		return nil, fmt.Errorf("failed to reload homepage: %w", err)
	}
	return toHomepageContent(&homepage, faqs), nil
}

// CreateFAQ appends a FAQ to the homepage of in.Language
func (s *HomepageService) CreateFAQ(ctx context.Context, in CreateFAQInput) (*FAQContent, error) {
	faq := model.HomepageFAQ{
		Question:   strings.TrimSpace(in.Question),
		Answer:     strings.TrimSpace(in.Answer),
		OrderIndex: in.Order,
		IsActive:   boolOr(in.IsActive, true),
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var homepage model.Homepage
		if err := tx.Select("id").Where("language = ?", in.Language).Take(&homepage).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrHomepageNotFound
			}
			return fmt.Errorf("failed to look up homepage: %w", err)
		}
		faq.HomepageID = homepage.ID

		if faq.OrderIndex == 0 {
			err := tx.Model(&model.HomepageFAQ{}).
				Where("homepage_id = ?", homepage.ID).
				Select("COALESCE(MAX(order_index), 0) + 1").
				Scan(&faq.OrderIndex).Error
			if err != nil {
				return fmt.Errorf("failed to compute next faq order: %w", err)
			}
		}

		if err := tx.Create(&faq).Error; err != nil {
			return fmt.Errorf("failed to create faq: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	out := toFAQContent(faq)
	return &out, nil
}

// UpdateFAQ applies the supplied fields. Blank questions and answers count as
// not supplied. ErrFAQNotFound wins over ErrNoFieldsToUpdate.
func (s *HomepageService) UpdateFAQ(ctx context.Context, id uint, in UpdateFAQInput) (*FAQContent, error) {
	var faq model.HomepageFAQ

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Take(&faq, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrFAQNotFound
			}
			return fmt.Errorf("failed to fetch faq: %w", err)
		}

		updates := map[string]interface{}{}
		if in.Question != nil && strings.TrimSpace(*in.Question) != "" {
			updates["question"] = strings.TrimSpace(*in.Question)
		}
		if in.Answer != nil && strings.TrimSpace(*in.Answer) != "" {
			updates["answer"] = strings.TrimSpace(*in.Answer)
		}
		if in.Order != nil {
			updates["order_index"] = *in.Order
		}
		if in.IsActive != nil {
			updates["is_active"] = *in.IsActive
		}
		if len(updates) == 0 {
			return ErrNoFieldsToUpdate
		}
		updates["updated_at"] = time.Now()

		if err := tx.Model(&model.HomepageFAQ{}).Where("id = ?", id).Updates(updates).Error; err != nil {
			return fmt.Errorf("failed to update faq: %w", err)
		}
		if err := tx.Take(&faq, id).Error; err != nil {
			return fmt.Errorf("failed to reload faq: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	out := toFAQContent(faq)
	return &out, nil
}

// DeleteFAQ hard-deletes a FAQ
func (s *HomepageService) DeleteFAQ(ctx context.Context, id uint) error {
	result := s.db.WithContext(ctx).Delete(&model.HomepageFAQ{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete faq: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrFAQNotFound
	}
	return nil
}

func toHomepageContent(h *model.Homepage, faqs []model.HomepageFAQ) *HomepageContent {
	out := &HomepageContent{
		ID:        fmt.Sprintf("homepage_%s_%03d", h.Language, h.ID),
		Language:  h.Language,
		FAQs:      make([]FAQContent, 0, len(faqs)),
		CreatedAt: h.CreatedAt.UTC(),
		UpdatedAt: h.UpdatedAt.UTC(),
		Version:   h.Version,
	}

	if hero := h.Hero; hero != nil {
		out.Hero = &HeroContent{
			ID:              fmt.Sprintf("hero_%03d", hero.ID),
			Title:           hero.Title,
			Subtitle:        hero.Subtitle,
			BackgroundImage: hero.BackgroundImage,
			CTAText:         hero.CTAText,
			CTALink:         hero.CTALink,
			CreatedAt:       hero.CreatedAt.UTC(),
			UpdatedAt:       hero.UpdatedAt.UTC(),
		}
	}
	if about := h.About; about != nil {
		out.About = &AboutContent{
			ID:        fmt.Sprintf("about_%03d", about.ID),
			Title:     about.Title,
			Content:   about.Content,
			Image:     about.Image,
			Features:  rawOr(about.Features, "[]"),
			CreatedAt: about.CreatedAt.UTC(),
			UpdatedAt: about.UpdatedAt.UTC(),
		}
	}
	if contact := h.Contact; contact != nil {
		out.Contact = &ContactContent{
			ID:           fmt.Sprintf("contact_%03d", contact.ID),
			Email:        contact.Email,
			Phone:        contact.Phone,
			Address:      contact.Address,
			Hours:        contact.Hours,
			Description:  contact.Description,
			SupportEmail: contact.SupportEmail,
			SalesEmail:   contact.SalesEmail,
			SocialLinks:  rawOr(contact.SocialLinks, "{}"),
			CreatedAt:    contact.CreatedAt.UTC(),
			UpdatedAt:    contact.UpdatedAt.UTC(),
		}
	}

	for _, f := range faqs {
		out.FAQs = append(out.FAQs, toFAQContent(f))
	}
	return out
}

func toFAQContent(f model.HomepageFAQ) FAQContent {
	return FAQContent{
		ID:        fmt.Sprintf("faq_%03d", f.ID),
		Question:  f.Question,
		Answer:    f.Answer,
		Order:     f.OrderIndex,
		IsActive:  f.IsActive,
		CreatedAt: f.CreatedAt.UTC(),
		UpdatedAt: f.UpdatedAt.UTC(),
	}
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func boolOr(b *bool, fallback bool) bool {
	if b == nil {
		return fallback
	}
	return *b
}

// jsonOr stores raw as given, using empty for an absent or null value
func jsonOr(raw json.RawMessage, empty string) (datatypes.JSON, error) {
	if len(raw) == 0 {
		return datatypes.JSON(empty), nil
	}
	b, err := json.Marshal(raw)
	if err != nil {
		return nil, err
	}
	if string(b) == "null" {
		b = []byte(empty)
	}
	return datatypes.JSON(b), nil
}

func rawOr(j datatypes.JSON, empty string) json.RawMessage {
	if len(j) == 0 || string(j) == "null" {
		return json.RawMessage(empty)
	}
	return json.RawMessage(j)
}
