package routes

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/navbryce/next-blog-be/controllers"
	"github.com/navbryce/next-blog-be/db"
	"github.com/navbryce/next-blog-be/util"
)

type postRoutes struct {
	controller *controllers.PostController
}

func AddPostRoutes(group *gin.RouterGroup, controller *controllers.PostController) {
	routes := postRoutes{controller}
	group.GET("/", util.HandlerWrapper(routes.getPosts, &util.HandlerOpts{}))
	group.GET("/post/:id", util.HandlerWrapper(routes.getPostById, &util.HandlerOpts{}))
	group.GET("/create", util.HandlerWrapper(routes.createPostForm, &util.HandlerOpts{}))
	group.POST("/create", util.HandlerWrapper(routes.createPost, &util.HandlerOpts{}))
	group.POST("/delete/:id", util.HandlerWrapper(routes.deletePost, &util.HandlerOpts{}))
}

type createPostReq struct {
	Title   string `form:"title" binding:"required,max=255"`
	Content string `form:"content" binding:"required"`
}

func (pr *postRoutes) getPosts(c *gin.Context) *util.HTTPError {
	posts, httpErr := pr.controller.GetPosts(c.Request.Context())
	if httpErr != nil {
		return httpErr
	}
	c.HTML(http.StatusOK, "index.html", util.Page(c, gin.H{
		"Posts": posts,
	}))
	return nil
}

func (pr *postRoutes) getPostById(c *gin.Context) *util.HTTPError {
	id, httpErr := util.ParseId(c.Param("id"))
	if httpErr != nil {
		return httpErr
	}
	post, httpErr := pr.controller.GetPostById(c.Request.Context(), id)
	if httpErr != nil {
		return httpErr
	}
	c.HTML(http.StatusOK, "post.html", util.Page(c, gin.H{
		"Post": post,
	}))
	return nil
}

func (pr *postRoutes) createPostForm(c *gin.Context) *util.HTTPError {
	c.HTML(http.StatusOK, "create.html", util.Page(c, gin.H{
		"Title":   "",
		"Content": "",
	}))
	return nil
}

func (pr *postRoutes) createPost(c *gin.Context) *util.HTTPError {
	var req createPostReq
	if err := c.ShouldBind(&req); err != nil && !isValidationErr(err) {
		return &util.HTTPError{
			Status:  http.StatusBadRequest,
			Message: "malformed form",
			Err:     err,
		}
	}

	if messages := req.validate(); len(messages) > 0 {
		c.HTML(http.StatusBadRequest, "create.html", util.Page(c, gin.H{
			"Title":   req.Title,
			"Content": req.Content,
			"Errors":  messages,
		}))
		return nil
	}

	id, httpErr := pr.controller.CreatePost(c.Request.Context(), &db.CreatePost{
		Title:   req.Title,
		Content: req.Content,
	})
	if httpErr != nil {
		return httpErr
	}
	c.Redirect(http.StatusSeeOther, fmt.Sprintf("/post/%d", id))
	return nil
}

func (pr *postRoutes) deletePost(c *gin.Context) *util.HTTPError {
	id, httpErr := util.ParseId(c.Param("id"))
	if httpErr != nil {
		return httpErr
	}
	if httpErr := pr.controller.DeletePost(c.Request.Context(), id); httpErr != nil {
		return httpErr
	}
	c.Redirect(http.StatusSeeOther, "/")
	return nil
}

// validate checks the submitted values as-is. A field holding only
// whitespace counts as missing but is never rewritten.
func (req *createPostReq) validate() []string {
	var messages []string
	if err := binding.Validator.ValidateStruct(req); err != nil {
		messages = validationMessages(err)
	}
	for _, field := range []struct{ name, value string }{
		{"title", req.Title},
		{"content", req.Content},
	} {
		if field.value != "" && strings.TrimSpace(field.value) == "" {
			messages = append(messages, fmt.Sprintf("%v is required", field.name))
		}
	}
	return messages
}

func isValidationErr(err error) bool {
	var validationErrs validator.ValidationErrors
	return errors.As(err, &validationErrs)
}

func validationMessages(err error) []string {
	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return []string{err.Error()}
	}
	messages := make([]string, 0, len(validationErrs))
	for _, fieldErr := range validationErrs {
		field := strings.ToLower(fieldErr.Field())
		switch fieldErr.Tag() {
		case "required":
			messages = append(messages, fmt.Sprintf("%v is required", field))
		case "max":
			messages = append(messages, fmt.Sprintf("%v must be at most %v characters", field, fieldErr.Param()))
		default:
			messages = append(messages, fmt.Sprintf("%v is invalid", field))
		}
	}
	return messages
}
