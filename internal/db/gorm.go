package db

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/pkg/errors"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/blogly-app/blogly-back/internal/config"
)

// DefaultImageURL is assigned to users created without an image.
const DefaultImageURL = "https://cdn.iconscout.com/icon/free/png-256/user-3114475-2598167.png"

const readableDateLayout = "Mon Jan 02 2006, 03:04 PM"

type (
	User struct {
		ID        uint   `gorm:"primarykey"`
		FirstName string `gorm:"size:32;not null"`
		LastName  string `gorm:"size:32;not null"`
		ImageURL  string `gorm:"not null"`
		Posts     []Post
	}

	Post struct {
		ID        uint   `gorm:"primarykey"`
		Title     string `gorm:"not null"`
		Content   string
		CreatedAt time.Time
		UserID    uint `gorm:"not null"`
		User      User
		Tags      []Tag `gorm:"many2many:post_tags;"`
	}

	Tag struct {
		ID    uint   `gorm:"primarykey"`
		Name  string `gorm:"size:32;not null;uniqueIndex"`
		Posts []Post `gorm:"many2many:post_tags;"`
	}

	// PostTag is the join model between posts and tags. The composite
	// primary key keeps (post_id, tag_id) pairs unique.
	PostTag struct {
		PostID uint `gorm:"primaryKey"`
		TagID  uint `gorm:"primaryKey"`
	}
)

// FullName is computed, not stored.
func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}

// ReadableDate formats CreatedAt as "Dow Mon DD YYYY, HH:MM AM/PM".
func (p *Post) ReadableDate() string {
	return p.CreatedAt.Format(readableDateLayout)
}

// Migrate sets up the join table and migrates the schema. Shared between
// the postgres client and the in-memory test stores.
func Migrate(db *gorm.DB) error {
	if err := db.SetupJoinTable(&Post{}, "Tags", &PostTag{}); err != nil {
		return errors.Wrap(err, "setup join table for posts")
	}
	if err := db.SetupJoinTable(&Tag{}, "Posts", &PostTag{}); err != nil {
		return errors.Wrap(err, "setup join table for tags")
	}
	if err := db.AutoMigrate(&User{}); err != nil {
		return errors.Wrap(err, "migrate user")
	}
	if err := db.AutoMigrate(&Post{}); err != nil {
		return errors.Wrap(err, "migrate post")
	}
	if err := db.AutoMigrate(&Tag{}); err != nil {
		return errors.Wrap(err, "migrate tag")
	}
	return nil
}

func NewGormClient(cfg *config.Config) (*gorm.DB, error) {
	newLogger := logger.New(log.New(os.Stdout, "\r\n", log.LstdFlags), logger.Config{
		SlowThreshold:             200 * time.Millisecond,
		LogLevel:                  logger.Info,
		Colorful:                  true,
		IgnoreRecordNotFoundError: false,
	})

	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		cfg.DBHost, cfg.DBUser, cfg.DBPassword, cfg.DBName, cfg.DBPort, cfg.DBSSLMode)
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: newLogger,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to connect database")
	}

	if err := Migrate(db); err != nil {
		return nil, err
	}

	return db, nil
}
