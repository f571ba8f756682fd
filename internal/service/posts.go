package service

import (
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/blogly-app/blogly-back/internal/db"
	"github.com/blogly-app/blogly-back/internal/validation"
)

// PostCreate persists a new post for the given author. Tag ids that do
// not resolve to an existing tag are ignored.
func (s *Blog) PostCreate(title, content string, authorID uint, tagIDs []uint) (*db.Post, error) {
	if err := validation.AsError(validation.PostTitle(title)); err != nil {
		return nil, err
	}

	author, err := s.userByID(s.db, authorID)
	if err != nil {
		return nil, err
	}

	tags, err := s.resolveTags(tagIDs)
	if err != nil {
		return nil, err
	}

	model := db.Post{
		Title:     title,
		Content:   content,
		CreatedAt: time.Now(),
		UserID:    author.ID,
		Tags:      tags,
	}

	res := s.db.Create(&model)
	if res.Error != nil {
		return nil, errors.Wrap(res.Error, "create post")
	}

	return &model, nil
}

// PostUpdate overwrites title and content only when submitted non-blank,
// but always replaces the tag set with the resolved one. An empty tagIDs
// clears every tag on the post.
func (s *Blog) PostUpdate(id uint, title, content string, tagIDs []uint) (*db.Post, error) {
	post, err := s.postByID(s.db, id)
	if err != nil {
		return nil, err
	}

	if !blank(title) {
		post.Title = title
	}
	if !blank(content) {
		post.Content = content
	}

	if err := validation.AsError(validation.PostTitle(post.Title)); err != nil {
		return nil, err
	}

	tags, err := s.resolveTags(tagIDs)
	if err != nil {
		return nil, err
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if res := tx.Save(post); res.Error != nil {
			return errors.Wrap(res.Error, "update post")
		}
		assoc := tx.Model(post).Association("Tags")
		if len(tags) == 0 {
			if err := assoc.Clear(); err != nil {
				return errors.Wrap(err, "clear tags")
			}
			return nil
		}
		if err := assoc.Replace(&tags); err != nil {
			return errors.Wrap(err, "replace tags")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	post.Tags = tags
	return post, nil
}

// PostDelete removes the post and its tag associations. The deleted post
// is returned so the caller keeps the author reference for redirecting.
func (s *Blog) PostDelete(id uint) (*db.Post, error) {
	post, err := s.postByID(s.db, id)
	if err != nil {
		return nil, err
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if res := tx.Where("post_id = ?", id).Delete(&db.PostTag{}); res.Error != nil {
			return errors.Wrap(res.Error, "delete post associations")
		}
		if res := tx.Delete(&db.Post{}, id); res.Error != nil {
			return errors.Wrap(res.Error, "delete post")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return post, nil
}

func (s *Blog) PostList() ([]db.Post, error) {
	posts := make([]db.Post, 0)
	res := s.db.Order("created_at DESC").Find(&posts)
	if res.Error != nil {
		return nil, errors.Wrap(res.Error, "list posts")
	}
	return posts, nil
}

func (s *Blog) PostGet(id uint) (*db.Post, error) {
	post := db.Post{}
	res := s.db.Preload("Tags").Preload("User").First(&post, id)
	if res.Error != nil {
		if errors.Is(res.Error, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, errors.Wrap(res.Error, "get post")
	}
	return &post, nil
}

func (s *Blog) PostsForUser(userID uint) ([]db.Post, error) {
	posts := make([]db.Post, 0)
	res := s.db.Where("user_id = ?", userID).Order("created_at DESC").Find(&posts)
	if res.Error != nil {
		return nil, errors.Wrap(res.Error, "list posts for user")
	}
	return posts, nil
}

func (s *Blog) PostsForTag(tagID uint) ([]db.Post, error) {
	sql, args, err := squirrel.
		Select("p.id", "p.title", "p.content", "p.created_at", "p.user_id").From("posts p").
		Join("post_tags pt ON p.id = pt.post_id").
		OrderBy("p.created_at DESC").
		Where(squirrel.Eq{"pt.tag_id": tagID}).
		ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "build sql")
	}

	posts := make([]db.Post, 0)
	res := s.db.Raw(sql, args...).Scan(&posts)
	if res.Error != nil {
		return nil, errors.Wrap(res.Error, "scan")
	}

	return posts, nil
}

func (s *Blog) resolveTags(tagIDs []uint) ([]db.Tag, error) {
	tags := make([]db.Tag, 0, len(tagIDs))
	if len(tagIDs) == 0 {
		return tags, nil
	}
	res := s.db.Where("id IN ?", tagIDs).Find(&tags)
	if res.Error != nil {
		return nil, errors.Wrap(res.Error, "resolve tags")
	}
	return tags, nil
}
