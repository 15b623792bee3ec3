package sqlstore

import (
	"context"
	"fmt"
	"time"

	db2 "github.com/navbryce/next-blog-be/db"
	"github.com/navbryce/next-blog-be/model"
	"github.com/upper/db/v4"
)

type PostDB struct {
	sess db.Session
}

func getPostDB(sess db.Session) *PostDB {
	return &PostDB{sess}
}

// createdAt is truncated to the precision of a DATETIME(6) column
func createdAt() time.Time {
	return time.Now().UTC().Truncate(time.Microsecond)
}

func (pdb *PostDB) CreatePost(ctx context.Context, post *db2.CreatePost) (int64, error) {
	var postId int64
	err := pdb.sess.TxContext(ctx, func(sess db.Session) error {
		res, err := sess.SQL().
			InsertInto(postTable).
			Columns("title", "content", "created_at").
			Values(post.Title, post.Content, createdAt()).
			ExecContext(ctx)
		if err != nil {
			return err
		}
		postId, err = res.LastInsertId()
		return err
	}, nil)
	if err != nil {
		return 0, fmt.Errorf("create post: %w", err)
	}
	return postId, nil
}

func (pdb *PostDB) GetPostById(ctx context.Context, id int64) (*model.Post, error) {
	var post model.Post
	if err := pdb.sess.SQL().
		Select(postColumns...).
		From(postTable).
		Where("id = ?", id).
		IteratorContext(ctx).
		One(&post); err != nil {
		if err == db.ErrNoMoreRows {
			return nil, db2.ErrNotFound
		}
		return nil, fmt.Errorf("get post %d: %w", id, err)
	}
	return &post, nil
}

func (pdb *PostDB) GetPosts(ctx context.Context) ([]*model.Post, error) {
	var posts []*model.Post
	if err := pdb.sess.SQL().
		Select(postColumns...).
		From(postTable).
		OrderBy("created_at DESC", "id DESC").
		IteratorContext(ctx).
		All(&posts); err != nil {
		return nil, fmt.Errorf("get posts: %w", err)
	}
	if posts == nil {
		posts = []*model.Post{}
	}
	return posts, nil
}

func (pdb *PostDB) DeletePost(ctx context.Context, id int64) error {
	return pdb.sess.TxContext(ctx, func(sess db.Session) error {
		var post model.Post
		if err := sess.SQL().
			Select("id").
			From(postTable).
			Where("id = ?", id).
			IteratorContext(ctx).
			One(&post); err != nil {
			if err == db.ErrNoMoreRows {
				return db2.ErrNotFound
			}
			return fmt.Errorf("find post %d: %w", id, err)
		}
		if _, err := sess.SQL().
			DeleteFrom(postTable).
			Where("id = ?", id).
			ExecContext(ctx); err != nil {
			return fmt.Errorf("delete post %d: %w", id, err)
		}
		return nil
	}, nil)
}
