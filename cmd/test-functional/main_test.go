package test_functional

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/stretchr/testify/assert"
)

func TestUserLifecycle(t *testing.T) {
	u := AppBaseURL
	u.Path = "/users"

	t.Run("create persists a row with the placeholder image", func(t *testing.T) {
		defer FlushDB()

		ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
		defer cancel()

		type Resp struct {
			ID       uint   `json:"id"`
			FullName string `json:"full_name"`
			ImageURL string `json:"image_url"`
		}

		resp, err := resty.New().
			R().
			SetHeader("Content-Type", "application/json").
			SetContext(ctx).
			SetResult(&Resp{}).
			SetBody(`
			{"first_name": "Alfred", "last_name": "Anyone"}
		`).
			Post(u.String())
		assert.Nil(t, err)

		assert.Equal(t, http.StatusOK, resp.StatusCode())

		got, ok := resp.Result().(*Resp)
		assert.True(t, ok)
		assert.Equal(t, "Alfred Anyone", got.FullName)
		assert.NotEmpty(t, got.ImageURL)

		var (
			first string
			last  string
		)
		err = DBConn.QueryRow(ctx, "SELECT first_name, last_name FROM users WHERE id=$1", got.ID).Scan(&first, &last)
		assert.Nil(t, err)

		assert.Equal(t, "Alfred", first)
		assert.Equal(t, "Anyone", last)
	})

	t.Run("overlong names are rejected", func(t *testing.T) {
		defer FlushDB()

		ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
		defer cancel()

		resp, err := resty.New().
			R().
			SetHeader("Content-Type", "application/json").
			SetContext(ctx).
			SetBody(`
			{"first_name": "this first name is over thirty two characters", "last_name": "Anyone"}
		`).
			Post(u.String())
		assert.Nil(t, err)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode())

		var count int
		err = DBConn.QueryRow(ctx, "SELECT COUNT(*) FROM users").Scan(&count)
		assert.Nil(t, err)
		assert.Equal(t, 0, count)
	})

	t.Run("deleting a user removes their posts", func(t *testing.T) {
		defer FlushDB()

		ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
		defer cancel()

		_, err := DBConn.Exec(ctx, "INSERT INTO users (id, first_name, last_name, image_url) VALUES (1, 'Testy', 'Testerson', 'x')")
		assert.Nil(t, err)
		_, err = DBConn.Exec(ctx, "INSERT INTO posts (title, content, created_at, user_id) VALUES ('Test Post', '', NOW(), 1)")
		assert.Nil(t, err)

		deleteURL := AppBaseURL
		deleteURL.Path = "/users/1"

		resp, err := resty.New().
			R().
			SetContext(ctx).
			Delete(deleteURL.String())
		assert.Nil(t, err)

		assert.Equal(t, http.StatusNoContent, resp.StatusCode())

		var posts int
		err = DBConn.QueryRow(ctx, "SELECT COUNT(*) FROM posts WHERE user_id=1").Scan(&posts)
		assert.Nil(t, err)
		assert.Equal(t, 0, posts)
	})
}

func TestTagUniqueness(t *testing.T) {
	u := AppBaseURL
	u.Path = "/tags"

	defer FlushDB()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()

	client := resty.New()

	resp, err := client.R().
		SetHeader("Content-Type", "application/json").
		SetContext(ctx).
		SetBody(`{"name": "sports"}`).
		Post(u.String())
	assert.Nil(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode())

	resp, err = client.R().
		SetHeader("Content-Type", "application/json").
		SetContext(ctx).
		SetBody(`{"name": "sports"}`).
		Post(u.String())
	assert.Nil(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode())

	var count int
	err = DBConn.QueryRow(ctx, "SELECT COUNT(*) FROM tags WHERE name='sports'").Scan(&count)
	assert.Nil(t, err)
	assert.Equal(t, 1, count)
}
