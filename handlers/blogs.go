package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/blogmint/blogmint/internal/authors"
	"github.com/blogmint/blogmint/internal/blogs"
	"github.com/blogmint/blogmint/internal/config"
	"github.com/blogmint/blogmint/internal/models"
	"github.com/blogmint/blogmint/internal/validate"
	"github.com/blogmint/blogmint/pkg/middleware"
)

const (
	// the blog document has exactly seven client-settable fields
	maxBlogKeys = 7
	// bulk delete recognizes title, authorId, subcategory and tags
	maxDeleteFilterKeys = 4
)

// BlogHandler serves the blog management operations: create, list/filter,
// update, single delete and bulk delete by filter.
type BlogHandler struct {
	cfg     *config.Config
	authors *authors.Service
	blogs   *blogs.Service
}

func NewBlogHandler(cfg *config.Config, a *authors.Service, b *blogs.Service) *BlogHandler {
	return &BlogHandler{cfg: cfg, authors: a, blogs: b}
}

// Register wires the blog routes behind the access-control gates: every
// route requires authentication, single-resource mutations additionally
// require ownership.
func (h *BlogHandler) Register(rg *gin.RouterGroup) {
	authn := middleware.Authentication(h.cfg)
	authz := middleware.Authorization(h.blogs)

	rg.POST("/blogs", authn, h.Create)
	rg.GET("/blogs", authn, h.List)
	rg.PUT("/blogs/:blogId", authn, authz, h.Update)
	rg.DELETE("/blogs/:blogId", authn, authz, h.Delete)
	rg.DELETE("/blogs", authn, h.DeleteFiltered)
}

// Create persists a new post owned by the authenticated author.
func (h *BlogHandler) Create(c *gin.Context) {
	if len(c.Request.URL.Query()) > 0 {
		fail(c, http.StatusBadRequest, "invalid request")
		return
	}

	body, err := decodeBody(c)
	if err != nil {
		fail(c, http.StatusBadRequest, "invalid request body")
		return
	}
	if !validate.IsNonEmptyMap(body) {
		fail(c, http.StatusBadRequest, "Blog details are required")
		return
	}
	if len(body) > maxBlogKeys {
		fail(c, http.StatusBadRequest, "invalid data entry inside request body")
		return
	}

	if !validate.IsPresent(body["title"]) {
		fail(c, http.StatusBadRequest, "Blog title is required")
		return
	}
	if !validate.IsPresent(body["body"]) {
		fail(c, http.StatusBadRequest, "Blog body is required")
		return
	}
	if !validate.IsPresent(body["authorId"]) {
		fail(c, http.StatusBadRequest, "authorId is required")
		return
	}
	authorHex := body["authorId"].(string)
	if !validate.IsObjectID(authorHex) {
		fail(c, http.StatusBadRequest, "Enter a valid authorId")
		return
	}
	authorID, _ := primitive.ObjectIDFromHex(authorHex)

	author, err := h.authors.GetByID(c.Request.Context(), authorID)
	if err != nil {
		serverError(c, err)
		return
	}
	if author == nil {
		fail(c, http.StatusNotFound, fmt.Sprintf("No author found by %s", authorHex))
		return
	}

	// an author can only create posts as themselves
	if authorHex != c.GetString(middleware.ContextAuthorID) {
		fail(c, http.StatusForbidden, "Unauthorized access")
		return
	}

	if !validate.IsPresent(body["category"]) {
		fail(c, http.StatusBadRequest, "Blog category is required")
		return
	}

	var tags, subcategory models.TagList
	if v, ok := body["tags"]; ok {
		if !validate.IsTagLike(v) {
			fail(c, http.StatusBadRequest, "Blog tags must be in valid format")
			return
		}
		tags, _ = models.TagListFromValue(v)
	}
	if v, ok := body["subcategory"]; ok {
		if !validate.IsTagLike(v) {
			fail(c, http.StatusBadRequest, "Blog subcategory must be in valid format")
			return
		}
		subcategory, _ = models.TagListFromValue(v)
	}

	published := false
	if v, ok := body["isPublished"]; ok {
		b, isBool := v.(bool)
		if !isBool {
			fail(c, http.StatusBadRequest, "isPublished should be boolean")
			return
		}
		published = b
	}

	blog := &models.Blog{
		Title:       trimmed(body["title"]),
		Body:        trimmed(body["body"]),
		AuthorID:    authorID,
		Category:    trimmed(body["category"]),
		Tags:        tags.Trimmed(),
		Subcategory: subcategory.Trimmed(),
		IsPublished: published,
	}
	if published {
		now := time.Now().UTC()
		blog.PublishedAt = &now
	}

	created, err := h.blogs.Create(c.Request.Context(), blog)
	if err != nil {
		serverError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"status":  true,
		"message": "new blog created successfully",
		"data":    created,
	})
}

// List returns published, non-deleted posts, optionally narrowed by query
// parameters. Payload belongs in the query string; a request body is
// rejected.
func (h *BlogHandler) List(c *gin.Context) {
	body, err := decodeBody(c)
	if err != nil {
		fail(c, http.StatusBadRequest, "invalid request body")
		return
	}
	if validate.IsNonEmptyMap(body) {
		fail(c, http.StatusBadRequest, "Data is not required in request body")
		return
	}

	query := c.Request.URL.Query()
	filter := blogs.NewFilter().WithPublished(true)

	if vals, ok := query["authorId"]; ok {
		authorHex := vals[0]
		if !validate.IsObjectID(authorHex) {
			fail(c, http.StatusBadRequest, "Enter a valid authorId")
			return
		}
		authorID, _ := primitive.ObjectIDFromHex(authorHex)
		author, err := h.authors.GetByID(c.Request.Context(), authorID)
		if err != nil {
			serverError(c, err)
			return
		}
		if author == nil {
			fail(c, http.StatusNotFound, "no author found")
			return
		}
		filter = filter.WithAuthor(authorID)
	}

	if vals, ok := query["category"]; ok {
		if !validate.IsPresent(vals[0]) {
			fail(c, http.StatusBadRequest, "Blog category should be in valid format")
			return
		}
		filter = filter.WithCategory(trimmed(vals[0]))
	}

	if vals, ok := query["tags"]; ok {
		tags, perr := presentValues(vals)
		if perr != nil {
			fail(c, http.StatusBadRequest, "Blog tags must be in valid format")
			return
		}
		filter = filter.WithTags(tags)
	}

	if vals, ok := query["subcategory"]; ok {
		sub, perr := presentValues(vals)
		if perr != nil {
			fail(c, http.StatusBadRequest, "Blog subcategory must be in valid format")
			return
		}
		filter = filter.WithSubcategory(sub)
	}

	list, err := h.blogs.List(c.Request.Context(), filter)
	if err != nil {
		serverError(c, err)
		return
	}
	if len(list) == 0 {
		fail(c, http.StatusNotFound, "no blogs found")
		return
	}

	message := "blogs list"
	if len(query) > 0 {
		message = "filtered blogs list"
	}
	c.JSON(http.StatusOK, gin.H{
		"status":     true,
		"message":    message,
		"blogsCount": len(list),
		"blogList":   list,
	})
}

// Update edits title/body and adds tags/subcategory values on an owned,
// non-deleted post. Any update republishes the post, whatever fields it
// touched.
func (h *BlogHandler) Update(c *gin.Context) {
	if len(c.Request.URL.Query()) > 0 {
		fail(c, http.StatusBadRequest, "invalid request")
		return
	}

	body, err := decodeBody(c)
	if err != nil {
		fail(c, http.StatusBadRequest, "invalid request body")
		return
	}
	if !validate.IsNonEmptyMap(body) {
		fail(c, http.StatusBadRequest, "Blog details are required for update")
		return
	}

	blogHex := c.Param("blogId")
	id, err := primitive.ObjectIDFromHex(blogHex)
	if err != nil {
		fail(c, http.StatusBadRequest, "Enter a valid blogId")
		return
	}

	update := blogs.Update{}
	if v, ok := body["title"]; ok {
		if !validate.IsPresent(v) {
			fail(c, http.StatusBadRequest, "Blog title should be in valid format")
			return
		}
		t := trimmed(v)
		update.Title = &t
	}
	if v, ok := body["body"]; ok {
		if !validate.IsPresent(v) {
			fail(c, http.StatusBadRequest, "Blog body should be in valid format")
			return
		}
		b := trimmed(v)
		update.Body = &b
	}
	if v, ok := body["tags"]; ok {
		tags, perr := presentTagList(v)
		if perr != nil {
			fail(c, http.StatusBadRequest, "Blog tags must be in valid format")
			return
		}
		update.AddTags = tags
	}
	if v, ok := body["subcategory"]; ok {
		sub, perr := presentTagList(v)
		if perr != nil {
			fail(c, http.StatusBadRequest, "Blog subcategory must be in valid format")
			return
		}
		update.AddSubcategory = sub
	}

	updated, err := h.blogs.Update(c.Request.Context(), id, update)
	if err != nil {
		serverError(c, err)
		return
	}
	if updated == nil {
		fail(c, http.StatusNotFound, fmt.Sprintf("no blog found by %s", blogHex))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  true,
		"message": "Blog updated successfully",
		"data":    updated,
	})
}

// Delete soft-deletes a single owned post by path identifier.
func (h *BlogHandler) Delete(c *gin.Context) {
	if len(c.Request.URL.Query()) > 0 {
		fail(c, http.StatusBadRequest, "invalid request")
		return
	}

	body, err := decodeBody(c)
	if err != nil {
		fail(c, http.StatusBadRequest, "invalid request body")
		return
	}
	if validate.IsNonEmptyMap(body) {
		fail(c, http.StatusBadRequest, "data is not required inside request body")
		return
	}

	blogHex := c.Param("blogId")
	id, err := primitive.ObjectIDFromHex(blogHex)
	if err != nil {
		fail(c, http.StatusBadRequest, fmt.Sprintf("%s is not a valid blogId", blogHex))
		return
	}

	ok, err := h.blogs.SoftDelete(c.Request.Context(), id)
	if err != nil {
		serverError(c, err)
		return
	}
	if !ok {
		fail(c, http.StatusNotFound, fmt.Sprintf("no blog found by %s", blogHex))
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": true, "message": "Blog successfully deleted"})
}

// DeleteFiltered soft-deletes, in one batched update, the caller's
// unpublished posts matching the query filter. Posts owned by other authors
// are dropped from the match in process, whatever the filter selected.
func (h *BlogHandler) DeleteFiltered(c *gin.Context) {
	body, err := decodeBody(c)
	if err != nil {
		fail(c, http.StatusBadRequest, "invalid request body")
		return
	}
	if validate.IsNonEmptyMap(body) {
		fail(c, http.StatusBadRequest, "data is not required inside request body")
		return
	}

	query := c.Request.URL.Query()
	if len(query) == 0 {
		fail(c, http.StatusBadRequest, "data is required for deleting blogs")
		return
	}
	if len(query) > maxDeleteFilterKeys {
		fail(c, http.StatusBadRequest, "invalid entry inside query params")
		return
	}

	// published posts are excluded from bulk deletion
	filter := blogs.NewFilter().WithPublished(false)

	if v := query.Get("title"); query.Has("title") {
		if !validate.IsPresent(v) {
			fail(c, http.StatusBadRequest, "Blog title should be in valid format")
			return
		}
		filter = filter.WithTitle(trimmed(v))
	}

	if v := query.Get("authorId"); query.Has("authorId") {
		if !validate.IsPresent(v) {
			fail(c, http.StatusBadRequest, "Blog authorId should be in valid format")
			return
		}
		if !validate.IsObjectID(v) {
			fail(c, http.StatusBadRequest, "Blog authorId is invalid")
			return
		}
		authorID, _ := primitive.ObjectIDFromHex(v)
		author, err := h.authors.GetByID(c.Request.Context(), authorID)
		if err != nil {
			serverError(c, err)
			return
		}
		if author == nil {
			fail(c, http.StatusNotFound, fmt.Sprintf("no author found by %s", v))
			return
		}
		filter = filter.WithAuthor(authorID)
	}

	if v := query.Get("subcategory"); query.Has("subcategory") {
		if !validate.IsPresent(v) {
			fail(c, http.StatusBadRequest, "Blog subcategory must be in valid format")
			return
		}
		filter = filter.WithSubcategory([]string{trimmed(v)})
	}

	if v := query.Get("tags"); query.Has("tags") {
		if !validate.IsPresent(v) {
			fail(c, http.StatusBadRequest, "Blog tags must be in valid format")
			return
		}
		filter = filter.WithTags([]string{trimmed(v)})
	}

	matched, err := h.blogs.List(c.Request.Context(), filter)
	if err != nil {
		serverError(c, err)
		return
	}
	if len(matched) == 0 {
		fail(c, http.StatusNotFound, "no blogs found")
		return
	}

	caller, err := primitive.ObjectIDFromHex(c.GetString(middleware.ContextAuthorID))
	if err != nil {
		serverError(c, err)
		return
	}
	if _, err := h.blogs.SoftDeleteOwned(c.Request.Context(), matched, caller); err != nil {
		serverError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": true, "message": "blogs deleted successfully"})
}
