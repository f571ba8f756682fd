package service

import (
	"strings"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/blogly-app/blogly-back/internal/db"
)

// ErrNotFound is returned when a lookup by id matches no row. Every
// update and delete fetches first, so absent ids fail the same way
// across all entities.
var ErrNotFound = errors.New("record not found")

type Blog struct {
	db     *gorm.DB
	logger *zap.SugaredLogger
}

func NewBlog(db *gorm.DB, l *zap.SugaredLogger) *Blog {
	return &Blog{
		db:     db,
		logger: l,
	}
}

func (s *Blog) userByID(tx *gorm.DB, id uint) (*db.User, error) {
	user := db.User{}
	res := tx.First(&user, id)
	if res.Error != nil {
		if errors.Is(res.Error, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, errors.Wrap(res.Error, "get user")
	}
	return &user, nil
}

func (s *Blog) postByID(tx *gorm.DB, id uint) (*db.Post, error) {
	post := db.Post{}
	res := tx.First(&post, id)
	if res.Error != nil {
		if errors.Is(res.Error, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, errors.Wrap(res.Error, "get post")
	}
	return &post, nil
}

func (s *Blog) tagByID(tx *gorm.DB, id uint) (*db.Tag, error) {
	tag := db.Tag{}
	res := tx.First(&tag, id)
	if res.Error != nil {
		if errors.Is(res.Error, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, errors.Wrap(res.Error, "get tag")
	}
	return &tag, nil
}

func blank(s string) bool {
	return strings.TrimSpace(s) == ""
}
