// Package seed provides database seeding utilities for development and testing.
package seed

import (
	"fmt"
	"log"
	"math/rand"
	"strings"

	"inkwell/internal/models"

	"gorm.io/gorm"
)

// Options configuration for the seeder
type Options struct {
	NumUsers    int
	NumGroups   int
	NumPosts    int
	ShouldClean bool
}

var groupThemes = []struct {
	Title string
	Slug  string
}{
	{"Technology", "technology"},
	{"Travel", "travel"},
	{"Cooking", "cooking"},
	{"Books", "books"},
	{"Music", "music"},
	{"Photography", "photography"},
	{"Science", "science"},
	{"History", "history"},
	{"Cinema", "cinema"},
	{"Gardening", "gardening"},
}

// Seed populates the database with test data
func Seed(db *gorm.DB, opts Options) error {
	log.Printf("🌱 Starting database seeding with %d users, %d groups, %d posts...",
		opts.NumUsers, opts.NumGroups, opts.NumPosts)

	if opts.ShouldClean {
		if err := clearData(db); err != nil {
			log.Println("⚠️  Warning: Could not clear all existing data, but continuing anyway...")
		}
	}

	factory := NewFactory(db, SeedOptions{})

	users := make([]*models.User, 0, opts.NumUsers)
	for i := 0; i < opts.NumUsers; i++ {
		user, err := factory.CreateUser()
		if err != nil {
			return fmt.Errorf("failed to create users: %w", err)
		}
		users = append(users, user)
	}
	log.Printf("✓ %d test users created", len(users))

	groups, err := createOrGetGroups(db, factory, opts.NumGroups)
	if err != nil {
		return fmt.Errorf("failed to create groups: %w", err)
	}
	log.Printf("✓ %d groups available", len(groups))

	posts := make([]*models.Post, 0, opts.NumPosts)
	for i := 0; i < opts.NumPosts; i++ {
		author := users[rand.Intn(len(users))]
		post := factory.BuildPost(author, func(p *models.Post) {
			// roughly two thirds of posts land in a group
			if rand.Intn(3) != 0 && len(groups) > 0 {
				gid := groups[rand.Intn(len(groups))].ID
				p.GroupID = &gid
			}
		})
		posts = append(posts, post)
	}
	if len(posts) > 0 {
		if err := factory.CreatePostsBatch(posts); err != nil {
			return fmt.Errorf("failed to create posts: %w", err)
		}
	}
	log.Printf("✓ %d posts created", len(posts))

	comments := 0
	for _, post := range posts {
		for i := rand.Intn(4); i > 0; i-- {
			commenter := users[rand.Intn(len(users))]
			if _, err := factory.CreateComment(commenter, post); err != nil {
				return fmt.Errorf("failed to create comments: %w", err)
			}
			comments++
		}
	}
	log.Printf("✓ %d comments created", comments)

	follows := 0
	for _, follower := range users {
		for i := rand.Intn(5); i > 0; i-- {
			author := users[rand.Intn(len(users))]
			if err := factory.CreateFollow(follower, author); err != nil {
				return fmt.Errorf("failed to create follows: %w", err)
			}
			follows++
		}
	}
	log.Printf("✓ %d follow edges created", follows)

	log.Println("🌱 Seeding complete")
	return nil
}

// createOrGetGroups ensures the fixed themed groups exist, topping up with
// generated ones when more are requested.
func createOrGetGroups(db *gorm.DB, factory *Factory, count int) ([]*models.Group, error) {
	if count <= 0 {
		count = len(groupThemes)
	}

	groups := make([]*models.Group, 0, count)
	for i := 0; i < count && i < len(groupThemes); i++ {
		theme := groupThemes[i]
		var group models.Group
		err := db.Where("slug = ?", theme.Slug).First(&group).Error
		if err == nil {
			groups = append(groups, &group)
			continue
		}
		created, err := factory.CreateGroup(func(g *models.Group) {
			g.Title = theme.Title
			g.Slug = theme.Slug
		})
		if err != nil {
			return nil, err
		}
		groups = append(groups, created)
	}

	for i := len(groups); i < count; i++ {
		created, err := factory.CreateGroup()
		if err != nil {
			return nil, err
		}
		groups = append(groups, created)
	}
	return groups, nil
}

// clearData removes existing rows in dependency order.
func clearData(db *gorm.DB) error {
	tables := []string{"comments", "follows", "posts", "groups", "users"}
	for _, table := range tables {
		if err := db.Exec("DELETE FROM " + table).Error; err != nil {
			return err
		}
	}
	return nil
}

func isDuplicateError(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate") || strings.Contains(msg, "unique constraint")
}
