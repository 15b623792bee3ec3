package model

import (
	"time"
)

type Post struct {
	Id        int64     `db:"id,omitempty" json:"id"`
	Title     string    `db:"title" json:"title"`
	Content   string    `db:"content" json:"content"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}
