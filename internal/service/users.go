package service

import (
	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/blogly-app/blogly-back/internal/db"
	"github.com/blogly-app/blogly-back/internal/validation"
)

func (s *Blog) UserCreate(first, last, imageURL string) (*db.User, error) {
	if err := validation.AsError(validation.UserFields(first, last)); err != nil {
		return nil, err
	}

	if blank(imageURL) {
		imageURL = db.DefaultImageURL
	}

	model := db.User{
		FirstName: first,
		LastName:  last,
		ImageURL:  imageURL,
	}

	res := s.db.Create(&model)
	if res.Error != nil {
		return nil, errors.Wrap(res.Error, "create user")
	}

	return &model, nil
}

// UserUpdate overwrites only the fields submitted non-blank; blank
// submissions retain the stored value. Validation runs on the merged
// result and any violation blocks the whole update.
func (s *Blog) UserUpdate(id uint, first, last, imageURL string) (*db.User, error) {
	user, err := s.userByID(s.db, id)
	if err != nil {
		return nil, err
	}

	if !blank(first) {
		user.FirstName = first
	}
	if !blank(last) {
		user.LastName = last
	}
	if !blank(imageURL) {
		user.ImageURL = imageURL
	}

	if err := validation.AsError(validation.UserFields(user.FirstName, user.LastName)); err != nil {
		return nil, err
	}

	res := s.db.Save(user)
	if res.Error != nil {
		return nil, errors.Wrap(res.Error, "update user")
	}

	return user, nil
}

// UserDelete removes the user together with every post they authored
// and those posts' tag associations, as one transaction.
func (s *Blog) UserDelete(id uint) error {
	user, err := s.userByID(s.db, id)
	if err != nil {
		return err
	}

	postIDs := make([]uint, 0)
	err = s.db.Transaction(func(tx *gorm.DB) error {
		if res := tx.Model(&db.Post{}).Where("user_id = ?", id).Pluck("id", &postIDs); res.Error != nil {
			return errors.Wrap(res.Error, "list post ids")
		}
		if len(postIDs) != 0 {
			if res := tx.Where("post_id IN ?", postIDs).Delete(&db.PostTag{}); res.Error != nil {
				return errors.Wrap(res.Error, "delete post associations")
			}
			if res := tx.Where("user_id = ?", id).Delete(&db.Post{}); res.Error != nil {
				return errors.Wrap(res.Error, "delete posts")
			}
		}
		if res := tx.Delete(&db.User{}, id); res.Error != nil {
			return errors.Wrap(res.Error, "delete user")
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.logger.Infow("user deleted", "id", user.ID, "posts", len(postIDs))
	return nil
}

func (s *Blog) UserList() ([]db.User, error) {
	users := make([]db.User, 0)
	res := s.db.Order("last_name ASC, first_name ASC").Find(&users)
	if res.Error != nil {
		return nil, errors.Wrap(res.Error, "list users")
	}
	return users, nil
}

func (s *Blog) UserGet(id uint) (*db.User, error) {
	return s.userByID(s.db, id)
}
