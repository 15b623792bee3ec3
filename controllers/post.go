package controllers

import (
	"context"

	"github.com/navbryce/next-blog-be/db"
	"github.com/navbryce/next-blog-be/model"
	"github.com/navbryce/next-blog-be/util"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	log "github.com/sirupsen/logrus"
)

var (
	postsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "blog_posts_created_total",
		Help: "Number of posts created",
	})
	postsDeleted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "blog_posts_deleted_total",
		Help: "Number of posts deleted",
	})
)

type PostController struct {
	db db.PostDatabase
}

func NewPostController(db db.PostDatabase) *PostController {
	return &PostController{db: db}
}

func (pc *PostController) GetPosts(c context.Context) ([]*model.Post, *util.HTTPError) {
	posts, err := pc.db.GetPosts(c)
	if err != nil {
		return nil, util.BuildDbHTTPErr(err)
	}
	return posts, nil
}

func (pc *PostController) GetPostById(c context.Context, id int64) (*model.Post, *util.HTTPError) {
	post, err := pc.db.GetPostById(c, id)
	if err != nil {
		return nil, notFoundOrDbErr(err)
	}
	return post, nil
}

func (pc *PostController) CreatePost(c context.Context, req *db.CreatePost) (int64, *util.HTTPError) {
	id, err := pc.db.CreatePost(c, req)
	if err != nil {
		return 0, util.BuildCreateHTTPErr(err)
	}
	postsCreated.Inc()
	log.WithField("id", id).Info("Created post")
	return id, nil
}

func (pc *PostController) DeletePost(c context.Context, id int64) *util.HTTPError {
	if err := pc.db.DeletePost(c, id); err != nil {
		return notFoundOrDbErr(err)
	}
	postsDeleted.Inc()
	log.WithField("id", id).Info("Deleted post")
	return nil
}

func notFoundOrDbErr(err error) *util.HTTPError {
	if db.IsNotFound(err) {
		httpErr := util.NotFoundHTTPErr
		return &httpErr
	}
	return util.BuildDbHTTPErr(err)
}
