package transport

import (
	"context"
	"net/http"
	"strconv"

	"github.com/go-playground/validator"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/blogly-app/blogly-back/internal/config"
	"github.com/blogly-app/blogly-back/internal/models"
	"github.com/blogly-app/blogly-back/internal/service"
	"github.com/blogly-app/blogly-back/internal/validation"
)

const requestIDHeader = "X-Request-Id"

type (
	CustomValidator struct {
		validator *validator.Validate
	}

	HTTPServer struct {
		blog   *service.Blog
		logger *zap.SugaredLogger
	}
)

func NewHTTPServer(lc fx.Lifecycle, cfg *config.Config, blog *service.Blog, logger *zap.SugaredLogger) *HTTPServer {
	e := echo.New()

	instance := HTTPServer{
		blog:   blog,
		logger: logger,
	}

	userG := e.Group("/users")
	userG.GET("", instance.UserList)
	userG.POST("", instance.UserCreate)
	userG.GET("/:id", instance.UserGet)
	userG.PATCH("/:id", instance.UserUpdate)
	userG.DELETE("/:id", instance.UserDelete)
	userG.GET("/:id/posts", instance.UserPosts)

	postG := e.Group("/posts")
	postG.GET("", instance.PostList)
	postG.POST("", instance.PostCreate)
	postG.GET("/:id", instance.PostGet)
	postG.PATCH("/:id", instance.PostUpdate)
	postG.DELETE("/:id", instance.PostDelete)
	postG.GET("/:id/tags", instance.PostTags)

	tagG := e.Group("/tags")
	tagG.GET("", instance.TagList)
	tagG.POST("", instance.TagCreate)
	tagG.GET("/:id", instance.TagGet)
	tagG.PATCH("/:id", instance.TagUpdate)
	tagG.DELETE("/:id", instance.TagDelete)
	tagG.GET("/:id/posts", instance.TagPosts)

	e.GET("/ping", func(c echo.Context) error { return c.String(http.StatusOK, "pong") })

	e.Use(middleware.CORS())
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(RequestID)

	e.Validator = &CustomValidator{validator: validator.New()}

	echo.NotFoundHandler = func(c echo.Context) error {
		return c.NoContent(http.StatusNotFound)
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				listen := cfg.Host + ":" + cfg.Port
				if err := e.Start(listen); err != nil && err != http.ErrServerClosed {
					e.Logger.Fatal("shutting down the server")
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			logger.Info("Stopping HTTP server.")
			return e.Shutdown(ctx)
		},
	})

	return &instance
}

func (s *HTTPServer) UserList(c echo.Context) error {
	users, err := s.blog.UserList()
	if err != nil {
		return s.respondError(c, err)
	}

	resp := make([]models.UserResp, len(users))
	for i := range users {
		resp[i] = models.NewUserResp(&users[i])
	}
	return c.JSON(http.StatusOK, resp)
}

func (s *HTTPServer) UserCreate(c echo.Context) error {
	req := models.UserReq{}
	if err := BindAndValidate(c, &req); err != nil {
		return err
	}

	user, err := s.blog.UserCreate(req.FirstName, req.LastName, req.ImageURL)
	if err != nil {
		return s.respondError(c, err)
	}

	return c.JSON(http.StatusOK, models.NewUserResp(user))
}

func (s *HTTPServer) UserGet(c echo.Context) error {
	id, err := GetAndParseParam(c, "id")
	if err != nil {
		return err
	}

	user, err := s.blog.UserGet(uint(id))
	if err != nil {
		return s.respondError(c, err)
	}

	return c.JSON(http.StatusOK, models.NewUserResp(user))
}

func (s *HTTPServer) UserUpdate(c echo.Context) error {
	id, err := GetAndParseParam(c, "id")
	if err != nil {
		return err
	}

	req := models.UserReq{}
	if err := BindAndValidate(c, &req); err != nil {
		return err
	}

	user, err := s.blog.UserUpdate(uint(id), req.FirstName, req.LastName, req.ImageURL)
	if err != nil {
		return s.respondError(c, err)
	}

	return c.JSON(http.StatusOK, models.NewUserResp(user))
}

func (s *HTTPServer) UserDelete(c echo.Context) error {
	id, err := GetAndParseParam(c, "id")
	if err != nil {
		return err
	}

	if err := s.blog.UserDelete(uint(id)); err != nil {
		return s.respondError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

func (s *HTTPServer) UserPosts(c echo.Context) error {
	id, err := GetAndParseParam(c, "id")
	if err != nil {
		return err
	}

	if _, err := s.blog.UserGet(uint(id)); err != nil {
		return s.respondError(c, err)
	}

	posts, err := s.blog.PostsForUser(uint(id))
	if err != nil {
		return s.respondError(c, err)
	}

	resp := make([]models.PostResp, len(posts))
	for i := range posts {
		resp[i] = models.NewPostResp(&posts[i])
	}
	return c.JSON(http.StatusOK, resp)
}

func (s *HTTPServer) PostList(c echo.Context) error {
	posts, err := s.blog.PostList()
	if err != nil {
		return s.respondError(c, err)
	}

	resp := make([]models.PostResp, len(posts))
	for i := range posts {
		resp[i] = models.NewPostResp(&posts[i])
	}
	return c.JSON(http.StatusOK, resp)
}

func (s *HTTPServer) PostCreate(c echo.Context) error {
	req := models.PostReq{}
	if err := BindAndValidate(c, &req); err != nil {
		return err
	}

	post, err := s.blog.PostCreate(req.Title, req.Content, req.UserID, req.Tags)
	if err != nil {
		return s.respondError(c, err)
	}

	return c.JSON(http.StatusOK, models.NewPostResp(post))
}

func (s *HTTPServer) PostGet(c echo.Context) error {
	id, err := GetAndParseParam(c, "id")
	if err != nil {
		return err
	}

	post, err := s.blog.PostGet(uint(id))
	if err != nil {
		return s.respondError(c, err)
	}

	return c.JSON(http.StatusOK, models.NewPostResp(post))
}

func (s *HTTPServer) PostUpdate(c echo.Context) error {
	id, err := GetAndParseParam(c, "id")
	if err != nil {
		return err
	}

	req := models.PostReq{}
	if err := BindAndValidate(c, &req); err != nil {
		return err
	}

	post, err := s.blog.PostUpdate(uint(id), req.Title, req.Content, req.Tags)
	if err != nil {
		return s.respondError(c, err)
	}

	return c.JSON(http.StatusOK, models.NewPostResp(post))
}

func (s *HTTPServer) PostDelete(c echo.Context) error {
	id, err := GetAndParseParam(c, "id")
	if err != nil {
		return err
	}

	post, err := s.blog.PostDelete(uint(id))
	if err != nil {
		return s.respondError(c, err)
	}

	// the author id lets the caller redirect back to the user's page
	return c.JSON(http.StatusOK, models.PostDeleteResp{UserID: post.UserID})
}

func (s *HTTPServer) PostTags(c echo.Context) error {
	id, err := GetAndParseParam(c, "id")
	if err != nil {
		return err
	}

	if _, err := s.blog.PostGet(uint(id)); err != nil {
		return s.respondError(c, err)
	}

	tags, err := s.blog.TagsForPost(uint(id))
	if err != nil {
		return s.respondError(c, err)
	}

	resp := make([]models.TagResp, len(tags))
	for i := range tags {
		resp[i] = models.NewTagResp(&tags[i])
	}
	return c.JSON(http.StatusOK, resp)
}

func (s *HTTPServer) TagList(c echo.Context) error {
	tags, err := s.blog.TagList()
	if err != nil {
		return s.respondError(c, err)
	}

	resp := make([]models.TagResp, len(tags))
	for i := range tags {
		resp[i] = models.NewTagResp(&tags[i])
	}
	return c.JSON(http.StatusOK, resp)
}

func (s *HTTPServer) TagCreate(c echo.Context) error {
	req := models.TagReq{}
	if err := BindAndValidate(c, &req); err != nil {
		return err
	}

	tag, err := s.blog.TagCreate(req.Name)
	if err != nil {
		return s.respondError(c, err)
	}

	return c.JSON(http.StatusOK, models.NewTagResp(tag))
}

func (s *HTTPServer) TagGet(c echo.Context) error {
	id, err := GetAndParseParam(c, "id")
	if err != nil {
		return err
	}

	tag, err := s.blog.TagGet(uint(id))
	if err != nil {
		return s.respondError(c, err)
	}

	return c.JSON(http.StatusOK, models.NewTagResp(tag))
}

func (s *HTTPServer) TagUpdate(c echo.Context) error {
	id, err := GetAndParseParam(c, "id")
	if err != nil {
		return err
	}

	req := models.TagReq{}
	if err := BindAndValidate(c, &req); err != nil {
		return err
	}

	tag, err := s.blog.TagUpdate(uint(id), req.Name)
	if err != nil {
		return s.respondError(c, err)
	}

	return c.JSON(http.StatusOK, models.NewTagResp(tag))
}

func (s *HTTPServer) TagDelete(c echo.Context) error {
	id, err := GetAndParseParam(c, "id")
	if err != nil {
		return err
	}

	if err := s.blog.TagDelete(uint(id)); err != nil {
		return s.respondError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

func (s *HTTPServer) TagPosts(c echo.Context) error {
	id, err := GetAndParseParam(c, "id")
	if err != nil {
		return err
	}

	if _, err := s.blog.TagGet(uint(id)); err != nil {
		return s.respondError(c, err)
	}

	posts, err := s.blog.PostsForTag(uint(id))
	if err != nil {
		return s.respondError(c, err)
	}

	resp := make([]models.PostResp, len(posts))
	for i := range posts {
		resp[i] = models.NewPostResp(&posts[i])
	}
	return c.JSON(http.StatusOK, resp)
}

// respondError keeps validation failures and missing rows from escaping
// as unhandled faults: they map to 400 with the collected violations and
// 404 respectively. Everything else bubbles up as a 500.
func (s *HTTPServer) respondError(c echo.Context, err error) error {
	vErr := &validation.Error{}
	if errors.As(err, &vErr) {
		return c.JSON(http.StatusBadRequest, models.ErrorResp{Errors: vErr.Violations})
	}
	if errors.Is(err, service.ErrNotFound) {
		return c.NoContent(http.StatusNotFound)
	}
	s.logger.Errorw("request failed", "path", c.Path(), "error", err)
	return err
}

////////

func (cv *CustomValidator) Validate(i interface{}) error {
	if err := cv.validator.Struct(i); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return nil
}

func RequestID(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		id := c.Request().Header.Get(requestIDHeader)
		if id == "" {
			id = uuid.New().String()
		}
		c.Response().Header().Set(requestIDHeader, id)
		return next(c)
	}
}

func BindAndValidate(c echo.Context, v interface{}) error {
	var err error
	if err = c.Bind(v); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err = c.Validate(v); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return nil
}

func GetParam(c echo.Context, name string) (string, error) {
	value := c.Param(name)
	if value == "" {
		return "", echo.NewHTTPError(http.StatusBadRequest, "invalid path param 'id'")
	}
	return value, nil
}

func GetAndParseParam(c echo.Context, name string) (uint64, error) {
	v, e := GetParam(c, name)
	if e != nil {
		return 0, e
	}
	vv, e := strconv.ParseUint(v, 10, 64)
	if e != nil {
		return 0, e
	}
	return vv, nil
}
