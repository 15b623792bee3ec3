package sqlstore

const postTable = "post"

var postColumns = []interface{}{
	"id",
	"title",
	"content",
	"created_at",
}
