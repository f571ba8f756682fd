package service

import (
	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/blogly-app/blogly-back/internal/db"
	"github.com/blogly-app/blogly-back/internal/validation"
)

// TagCreate checks the name against every existing tag name before
// persisting. The unique index on tags.name backstops the narrow race
// between the check and the commit; losing it surfaces as a plain error.
func (s *Blog) TagCreate(name string) (*db.Tag, error) {
	existing, err := s.tagNames(0)
	if err != nil {
		return nil, err
	}

	if err := validation.AsError(validation.TagName(name, existing)); err != nil {
		return nil, err
	}

	model := db.Tag{
		Name: name,
	}

	res := s.db.Create(&model)
	if res.Error != nil {
		return nil, errors.Wrap(res.Error, "create tag")
	}

	return &model, nil
}

// TagUpdate with a blank name is a no-op that returns the stored tag
// unchanged. A non-blank name is validated for length and uniqueness
// against every tag but this one.
func (s *Blog) TagUpdate(id uint, name string) (*db.Tag, error) {
	tag, err := s.tagByID(s.db, id)
	if err != nil {
		return nil, err
	}

	if blank(name) {
		return tag, nil
	}

	existing, err := s.tagNames(id)
	if err != nil {
		return nil, err
	}

	if err := validation.AsError(validation.TagName(name, existing)); err != nil {
		return nil, err
	}

	tag.Name = name
	res := s.db.Save(tag)
	if res.Error != nil {
		return nil, errors.Wrap(res.Error, "update tag")
	}

	return tag, nil
}

// TagDelete removes the tag and its association rows; posts stay.
func (s *Blog) TagDelete(id uint) error {
	tag, err := s.tagByID(s.db, id)
	if err != nil {
		return err
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if res := tx.Where("tag_id = ?", id).Delete(&db.PostTag{}); res.Error != nil {
			return errors.Wrap(res.Error, "delete tag associations")
		}
		if res := tx.Delete(&db.Tag{}, id); res.Error != nil {
			return errors.Wrap(res.Error, "delete tag")
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.logger.Infow("tag deleted", "id", tag.ID, "name", tag.Name)
	return nil
}

func (s *Blog) TagList() ([]db.Tag, error) {
	tags := make([]db.Tag, 0)
	res := s.db.Order("name ASC").Find(&tags)
	if res.Error != nil {
		return nil, errors.Wrap(res.Error, "list tags")
	}
	return tags, nil
}

func (s *Blog) TagGet(id uint) (*db.Tag, error) {
	return s.tagByID(s.db, id)
}

func (s *Blog) TagsForPost(postID uint) ([]db.Tag, error) {
	tags := make([]db.Tag, 0)
	res := s.db.
		Joins("JOIN post_tags pt ON pt.tag_id = tags.id").
		Where("pt.post_id = ?", postID).
		Order("tags.name ASC").
		Find(&tags)
	if res.Error != nil {
		return nil, errors.Wrap(res.Error, "list tags for post")
	}
	return tags, nil
}

// tagNames returns every stored tag name except the one with selfID,
// so edits do not collide with themselves. Pass 0 to include all.
func (s *Blog) tagNames(selfID uint) ([]string, error) {
	names := make([]string, 0)
	q := s.db.Model(&db.Tag{})
	if selfID != 0 {
		q = q.Where("id <> ?", selfID)
	}
	if res := q.Pluck("name", &names); res.Error != nil {
		return nil, errors.Wrap(res.Error, "list tag names")
	}
	return names, nil
}
