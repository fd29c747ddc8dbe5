package database

import (
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/sahilchouksey/dashboard-api/model"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Seeder handles database seeding operations
type Seeder struct {
	db  *gorm.DB
	now time.Time
}

// NewSeeder creates a new seeder instance. Demo enrollments are spread over
// the months before now.
func NewSeeder(db *gorm.DB, now time.Time) *Seeder {
	return &Seeder{db: db, now: now.UTC()}
}

// SeedAll runs all seed functions. Every step skips what already exists, so
// running it twice is harmless.
func (s *Seeder) SeedAll() error {
	log.Println("🌱 Starting database seeding...")

	return s.db.Transaction(func(tx *gorm.DB) error {
		users, err := s.seedUsers(tx)
		if err != nil {
			return fmt.Errorf("failed to seed users: %w", err)
		}

		topics, err := s.seedTopics(tx)
		if err != nil {
			return fmt.Errorf("failed to seed topics: %w", err)
		}

		if err := s.seedEnrollments(tx, users, topics); err != nil {
			return fmt.Errorf("failed to seed enrollments: %w", err)
		}

		if err := s.seedHomepage(tx); err != nil {
			return fmt.Errorf("failed to seed homepage: %w", err)
		}

		log.Println("✅ Database seeding completed successfully!")
		return nil
	})
}

// seedUsers creates the demo learners
func (s *Seeder) seedUsers(tx *gorm.DB) ([]model.User, error) {
	seeds := []model.User{
		{Name: "Aarav Sharma", Email: "aarav@example.com", IsVerified: true},
		{Name: "Meera Iyer", Email: "meera@example.com", IsVerified: true},
		{Name: "Rohan Gupta", Email: "rohan@example.com"},
		{Name: "Sara Khan", Email: "sara@example.com", IsVerified: true},
	}

	users := make([]model.User, 0, len(seeds))
	for i, seed := range seeds {
		seed.CreatedAt = s.now.AddDate(0, -i, 0)
		var user model.User
		if err := tx.Where("email = ?", seed.Email).Attrs(seed).FirstOrCreate(&user).Error; err != nil {
			return nil, err
		}
		users = append(users, user)
	}

	log.Printf("✓ %d users ready", len(users))
	return users, nil
}

// seedTopics creates the demo catalogue
func (s *Seeder) seedTopics(tx *gorm.DB) ([]model.Topic, error) {
	seeds := []model.Topic{
		{Title: "Network Defense Fundamentals", Description: "Firewalls, IDS and segmentation", Price: 499, Status: model.TopicStatusPublished},
		{Title: "Web Application Security", Description: "OWASP Top 10 in practice", Price: 799, Status: model.TopicStatusPublished},
		{Title: "Incident Response", Description: "Triage, containment and recovery", Price: 999, Status: model.TopicStatusPublished},
		{Title: "Cloud Hardening", Description: "Coming soon", Price: 1299, Status: model.TopicStatusDraft},
	}

	topics := make([]model.Topic, 0, len(seeds))
	for _, seed := range seeds {
		var topic model.Topic
		if err := tx.Where("title = ?", seed.Title).Attrs(seed).FirstOrCreate(&topic).Error; err != nil {
			return nil, err
		}
		topics = append(topics, topic)
	}

	log.Printf("✓ %d topics ready", len(topics))
	return topics, nil
}

// seedEnrollments enrolls every user in the published topics with a mix of
// payment states, plus progress rows and a few reviews
func (s *Seeder) seedEnrollments(tx *gorm.DB, users []model.User, topics []model.Topic) error {
	var count int64
	if err := tx.Model(&model.UserTopic{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		log.Println("⏭️  Enrollments already exist, skipping...")
		return nil
	}

	statuses := []model.PaymentStatus{
		model.PaymentStatusCompleted,
		model.PaymentStatusSubscription,
		model.PaymentStatusPaid,
		model.PaymentStatusPending,
		model.PaymentStatusActive,
		model.PaymentStatusProcessing,
	}

	n := 0
	for ui, user := range users {
		for ti, topic := range topics {
			if topic.Status != model.TopicStatusPublished {
				continue
			}
			enrollment := model.UserTopic{
				UserID:        user.ID,
				TopicID:       topic.ID,
				PaymentStatus: statuses[n%len(statuses)],
				EnrolledAt:    s.now.AddDate(0, -(ui+ti)%6, -ti),
			}
			if err := tx.Create(&enrollment).Error; err != nil {
				return err
			}

			progress := model.UserTopicProgress{
				UserID:    user.ID,
				TopicID:   topic.ID,
				Progress:  float64((n * 37) % 101),
				WatchTime: int64(n) * 1800,
			}
			if err := tx.Create(&progress).Error; err != nil {
				return err
			}
			n++
		}

		review := model.TopicReview{
			TopicID:    topics[ui%len(topics)].ID,
			UserID:     user.ID,
			Rating:     3 + ui%3,
			Comment:    "Clear and practical.",
			IsApproved: ui%2 == 0,
		}
		if err := tx.Create(&review).Error; err != nil {
			return err
		}
	}

	log.Printf("✓ %d enrollments created", n)
	return nil
}

// seedHomepage creates the English homepage with every section and FAQ
func (s *Seeder) seedHomepage(tx *gorm.DB) error {
	var count int64
	if err := tx.Model(&model.Homepage{}).Where("language = ?", "en").Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		log.Println("⏭️  Homepage already exists, skipping...")
		return nil
	}

	features, err := json.Marshal([]string{"Interactive Learning", "Expert Instructors", "Hands-on Labs"})
	if err != nil {
		return err
	}
	socialLinks, err := json.Marshal(map[string]string{
		"linkedin": "https://www.linkedin.com/company/example",
		"twitter":  "https://twitter.com/example",
	})
	if err != nil {
		return err
	}

	homepage := model.Homepage{
		Language: "en",
		Version:  1,
		IsActive: true,
		Hero: &model.HomepageHero{
			Title:    "Master Cyber Security",
			Subtitle: "Practical training built by working defenders",
			CTAText:  strPtr("Browse topics"),
			CTALink:  strPtr("/topics"),
		},
		About: &model.HomepageAbout{
			Title:    "Who we are",
			Content:  "We run hands-on security courses for teams and individuals.",
			Features: datatypes.JSON(features),
		},
		Contact: &model.HomepageContact{
			Email:        "info@example.com",
			Phone:        strPtr("+91 98765 43210"),
			Hours:        strPtr("Mon-Fri 9:00-18:00 IST"),
			SupportEmail: strPtr("support@example.com"),
			SocialLinks:  datatypes.JSON(socialLinks),
		},
		FAQs: []model.HomepageFAQ{
			{Question: "Do I get a certificate?", Answer: "Yes, after completing every module.", OrderIndex: 1, IsActive: true},
			{Question: "How long is a subscription valid?", Answer: "One year from enrollment.", OrderIndex: 2, IsActive: true},
			{Question: "Can I get a refund?", Answer: "Within 7 days of purchase.", OrderIndex: 3, IsActive: true},
		},
	}
	if err := tx.Create(&homepage).Error; err != nil {
		return err
	}

	log.Println("✓ Homepage (en) created")
	return nil
}

func strPtr(s string) *string {
	return &s
}
