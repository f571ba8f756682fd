package main

import (
	"log"

	"go.uber.org/zap"

	"github.com/blogly-app/blogly-back/internal/config"
	"github.com/blogly-app/blogly-back/internal/db"
	"github.com/blogly-app/blogly-back/internal/service"
)

// Drops and recreates the schema, then inserts the sample rows used by
// the listing pages during development.
func main() {
	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatal(err)
	}

	conn, err := db.NewGormClient(cfg)
	if err != nil {
		log.Fatal(err)
	}

	if err := conn.Migrator().DropTable(&db.PostTag{}, &db.Post{}, &db.Tag{}, &db.User{}); err != nil {
		log.Fatal(err)
	}
	if err := db.Migrate(conn); err != nil {
		log.Fatal(err)
	}

	l, err := zap.NewDevelopment()
	if err != nil {
		log.Fatal(err)
	}
	blog := service.NewBlog(conn, l.Sugar())

	users := [][2]string{
		{"Alfred", "Anyone"},
		{"Somebody", "Important"},
		{"Nobody", "Important"},
	}
	created := make([]*db.User, 0, len(users))
	for _, u := range users {
		user, err := blog.UserCreate(u[0], u[1], "")
		if err != nil {
			log.Fatal(err)
		}
		created = append(created, user)
	}

	tagIDs := make([]uint, 0, 2)
	for _, name := range []string{"sports", "news"} {
		tag, err := blog.TagCreate(name)
		if err != nil {
			log.Fatal(err)
		}
		tagIDs = append(tagIDs, tag.ID)
	}

	if _, err := blog.PostCreate("Hello Blogly", "A first post to have something to render.", created[0].ID, tagIDs); err != nil {
		log.Fatal(err)
	}
	if _, err := blog.PostCreate("Second Post", "", created[1].ID, nil); err != nil {
		log.Fatal(err)
	}

	log.Printf("seeded %d users, %d tags", len(created), len(tagIDs))
}
