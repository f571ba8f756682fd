package models

import (
	"github.com/blogly-app/blogly-back/internal/db"
	"github.com/blogly-app/blogly-back/internal/validation"
)

type UserReq struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	ImageURL  string `json:"image_url" validate:"omitempty,url"`
}

type UserResp struct {
	ID        uint   `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	FullName  string `json:"full_name"`
	ImageURL  string `json:"image_url"`
}

type PostReq struct {
	Title   string `json:"title"`
	Content string `json:"content"`
	UserID  uint   `json:"user_id"`
	Tags    []uint `json:"tags"`
}

type PostResp struct {
	ID           uint      `json:"id"`
	Title        string    `json:"title"`
	Content      string    `json:"content,omitempty"`
	ReadableDate string    `json:"readable_date"`
	UserID       uint      `json:"user_id"`
	Tags         []TagResp `json:"tags,omitempty"`
}

type PostDeleteResp struct {
	UserID uint `json:"user_id"`
}

type TagReq struct {
	Name string `json:"name"`
}

type TagResp struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

type ErrorResp struct {
	Errors []validation.Violation `json:"errors"`
}

func NewUserResp(u *db.User) UserResp {
	return UserResp{
		ID:        u.ID,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		FullName:  u.FullName(),
		ImageURL:  u.ImageURL,
	}
}

func NewPostResp(p *db.Post) PostResp {
	tags := make([]TagResp, len(p.Tags))
	for i := range p.Tags {
		tags[i] = NewTagResp(&p.Tags[i])
	}
	return PostResp{
		ID:           p.ID,
		Title:        p.Title,
		Content:      p.Content,
		ReadableDate: p.ReadableDate(),
		UserID:       p.UserID,
		Tags:         tags,
	}
}

func NewTagResp(t *db.Tag) TagResp {
	return TagResp{
		ID:   t.ID,
		Name: t.Name,
	}
}
