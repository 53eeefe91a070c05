// Package seed provides database seeding utilities for development and testing.
package seed

import (
	"fmt"
	"log"
	"math/rand"
	"time"

	"savora/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Options configures the seeder.
type Options struct {
	NumUsers    int
	NumPosts    int
	ShouldClean bool
}

var (
	dishes = []string{
		"Shakshuka", "Sourdough Loaf", "Beef Rendang", "Pad Thai", "Ratatouille",
		"Chicken Tikka Masala", "Miso Ramen", "Paella", "Moussaka", "Pho Bo",
		"Carbonara", "Bibimbap", "Falafel Wrap", "Gumbo", "Pierogi",
		"Okonomiyaki", "Ceviche", "Goulash", "Tagine", "Banh Mi",
	}

	categories = []string{
		"breakfast", "lunch", "dinner", "dessert", "vegan", "vegetarian",
		"baking", "grilling", "soup", "salad", "street food", "comfort food",
	}

	ingredients = []string{
		"flour", "eggs", "butter", "olive oil", "garlic", "onion", "tomatoes",
		"chicken", "beef", "rice", "noodles", "soy sauce", "chili", "ginger",
		"coriander", "cumin", "basil", "parmesan", "lemon", "coconut milk",
	}

	steps = []string{
		"Prep all ingredients and set them within reach.",
		"Heat the oil over medium heat until shimmering.",
		"Add the aromatics and cook until fragrant.",
		"Brown the protein in batches, without crowding the pan.",
		"Deglaze and scrape up the browned bits.",
		"Simmer, partially covered, stirring occasionally.",
		"Season to taste and rest before serving.",
	}
)

// Seed populates the database with test data.
func Seed(db *gorm.DB, opts Options) error {
	log.Printf("🌱 Starting database seeding with %d users and %d posts...", opts.NumUsers, opts.NumPosts)
	gofakeit.Seed(time.Now().UnixNano())

	if opts.ShouldClean {
		if err := clearData(db); err != nil {
			log.Println("⚠️  Warning: Could not clear all existing data, but continuing anyway...")
		}
	}

	users, err := createUsers(db, opts.NumUsers)
	if err != nil {
		return fmt.Errorf("failed to create users: %w", err)
	}
	log.Printf("✓ %d test users created", len(users))

	posts, err := createPosts(db, users, opts.NumPosts)
	if err != nil {
		return fmt.Errorf("failed to create posts: %w", err)
	}
	log.Printf("✓ %d posts created", len(posts))

	if err := createFollows(db, users); err != nil {
		return fmt.Errorf("failed to create follows: %w", err)
	}
	log.Println("✓ follow graph created")

	if err := createEngagement(db, users, posts); err != nil {
		return fmt.Errorf("failed to create engagement: %w", err)
	}
	log.Println("✓ likes, comments and notifications created")

	log.Println("✨ Seeding complete. All test users have the password: password123")
	return nil
}

func clearData(db *gorm.DB) error {
	// Children first so foreign keys never dangle mid-wipe
	for _, table := range []string{"notifications", "likes", "comments", "follows", "posts", "users"} {
		if err := db.Exec("DELETE FROM " + table).Error; err != nil {
			return err
		}
	}
	return nil
}

func createUsers(db *gorm.DB, count int) ([]*models.User, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	users := make([]*models.User, 0, count)
	for i := 0; i < count; i++ {
		avatar := fmt.Sprintf("https://i.pravatar.cc/150?u=%s", gofakeit.UUID())
		user := &models.User{
			Username:     fmt.Sprintf("%s%d", gofakeit.Username(), gofakeit.Number(100, 999)),
			Email:        gofakeit.Email(),
			Password:     string(hashed),
			FullName:     gofakeit.Name(),
			Bio:          gofakeit.Sentence(10),
			Link:         gofakeit.URL(),
			ProfileImage: &avatar,
		}
		if err := db.Create(user).Error; err != nil {
			// Random usernames/emails can collide; skip and carry on
			continue
		}
		users = append(users, user)
	}
	if len(users) == 0 {
		return nil, fmt.Errorf("no users could be created")
	}
	return users, nil
}

func pick(r *rand.Rand, pool []string, n int) models.StringList {
	out := make(models.StringList, 0, n)
	seen := make(map[string]struct{}, n)
	for len(out) < n {
		s := pool[r.Intn(len(pool))]
		if _, dup := seen[s]; dup {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}

func createPosts(db *gorm.DB, users []*models.User, count int) ([]*models.Post, error) {
	r := rand.New(rand.NewSource(time.Now().UnixNano()))

	posts := make([]*models.Post, 0, count)
	for i := 0; i < count; i++ {
		author := users[r.Intn(len(users))]
		image := fmt.Sprintf("https://picsum.photos/seed/%s/800/800", gofakeit.UUID())

		post := &models.Post{
			UserID:          author.ID,
			Title:           fmt.Sprintf("%s's %s", author.FullName, dishes[r.Intn(len(dishes))]),
			Image:           &image,
			Ingredients:     pick(r, ingredients, 4+r.Intn(5)),
			Categories:      pick(r, categories, 1+r.Intn(2)),
			Description:     gofakeit.Paragraph(1, 3, 8, " "),
			Servings:        fmt.Sprintf("%d", 1+r.Intn(8)),
			Instructions:    pick(r, steps, 3+r.Intn(3)),
			PreparationTime: fmt.Sprintf("%dm", 5+r.Intn(55)),
			CookingTime:     fmt.Sprintf("%dm", 10+r.Intn(110)),
			// realistic created_at spread over the last 90 days
			CreatedAt: time.Now().Add(-time.Duration(r.Intn(90*24)) * time.Hour),
		}
		if err := db.Create(post).Error; err != nil {
			return nil, err
		}
		posts = append(posts, post)
	}
	return posts, nil
}

func createFollows(db *gorm.DB, users []*models.User) error {
	r := rand.New(rand.NewSource(time.Now().UnixNano()))

	for _, follower := range users {
		for i := 0; i < r.Intn(6); i++ {
			followee := users[r.Intn(len(users))]
			if followee.ID == follower.ID {
				continue
			}
			err := db.Exec(
				`INSERT INTO follows (follower_id, followee_id, created_at)
				 VALUES (?, ?, CURRENT_TIMESTAMP)
				 ON CONFLICT (follower_id, followee_id) DO NOTHING`,
				follower.ID, followee.ID,
			).Error
			if err != nil {
				return err
			}
		}
	}
	return nil
}

func createEngagement(db *gorm.DB, users []*models.User, posts []*models.Post) error {
	r := rand.New(rand.NewSource(time.Now().UnixNano()))

	for _, post := range posts {
		for i := 0; i < r.Intn(8); i++ {
			fan := users[r.Intn(len(users))]
			err := db.Exec(
				`INSERT INTO likes (user_id, post_id, created_at)
				 VALUES (?, ?, CURRENT_TIMESTAMP)
				 ON CONFLICT (user_id, post_id) DO NOTHING`,
				fan.ID, post.ID,
			).Error
			if err != nil {
				return err
			}

			notification := &models.Notification{
				FromID: fan.ID,
				ToID:   post.UserID,
				Type:   models.NotificationTypeLike,
				Read:   r.Intn(2) == 0,
			}
			if err := db.Create(notification).Error; err != nil {
				return err
			}
		}

		for i := 0; i < r.Intn(4); i++ {
			commenter := users[r.Intn(len(users))]
			comment := &models.Comment{
				PostID: post.ID,
				UserID: commenter.ID,
				Text:   gofakeit.Sentence(8),
			}
			if err := db.Create(comment).Error; err != nil {
				return err
			}
		}
	}
	return nil
}
