package db

import (
	"context"
	"database/sql"

	"github.com/navbryce/next-blog-be/model"
)

type Database interface {
	PostDatabase
	Ping(ctx context.Context) error
	GetSQLDB() *sql.DB
	Close() error
}

type CreatePost struct {
	Title   string
	Content string
}

type PostDatabase interface {
	CreatePost(ctx context.Context, req *CreatePost) (postId int64, err error)
	// GetPostById returns ErrNotFound if no post has the id
	GetPostById(ctx context.Context, id int64) (*model.Post, error)
	// GetPosts returns every post, newest first
	GetPosts(ctx context.Context) ([]*model.Post, error)
	// DeletePost returns ErrNotFound if no post has the id
	DeletePost(ctx context.Context, id int64) error
}
