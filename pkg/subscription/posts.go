package subscription

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/ashokpds15/Myself/pkg/apiresponses"
	"github.com/ashokpds15/Myself/pkg/blogger"
	"github.com/ashokpds15/Myself/pkg/system"
)

const (
	defaultPostsPage = 12
	maxPostsPage     = 50
)

type PostsResponse struct {
	Items []blogger.Post `json:"items"`
}

// handleListPosts proxies the blog's post list so the SPA never sees the
// Blogger API key.
func (c *Controller) handleListPosts(ctx *gin.Context) {
	maxResults := defaultPostsPage
	if raw := ctx.Query("maxResults"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > maxPostsPage {
			apiresponses.RespondBadRequest(ctx, "maxResults must be between 1 and 50")
			return
		}
		maxResults = n
	}

	posts, err := c.posts.ListPosts(ctx.Request.Context(), maxResults)
	if err != nil {
		system.GetReqLogger(ctx, c.log).Warnw("Failed to list blog posts", "error", err)
		apiresponses.RespondBadGateway(ctx, "Failed to fetch blog posts")
		return
	}
	apiresponses.RespondOK(ctx, PostsResponse{Items: posts})
}

func (c *Controller) handleGetPost(ctx *gin.Context) {
	post, err := c.posts.GetPost(ctx.Request.Context(), ctx.Param("id"))
	switch {
	case errors.Is(err, blogger.ErrNotFound):
		apiresponses.RespondNotFound(ctx, "Blog post not found")
		return
	case err != nil:
		system.GetReqLogger(ctx, c.log).Warnw("Failed to fetch blog post", "postID", ctx.Param("id"), "error", err)
		apiresponses.RespondBadGateway(ctx, "Failed to fetch blog post")
		return
	}
	apiresponses.RespondOK(ctx, post)
}
