package v1handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"instagrab/pkg/domain"
	"instagrab/pkg/serrors"
)

// listingParams are the query parameters shared by all listing endpoints.
type listingParams struct {
	username string
	maxCount int
}

// parseListingParams reads and validates the username and max_count query
// parameters. max_count is required; deeper username validation happens in
// the fetcher.
func parseListingParams(c *gin.Context) (listingParams, error) {
	username := c.Query("username")
	if username == "" {
		return listingParams{}, serrors.With(serrors.ErrBadRequest, "username is required")
	}

	rawCount := c.Query("max_count")
	if rawCount == "" {
		return listingParams{}, serrors.With(serrors.ErrBadRequest, "max_count is required")
	}
	maxCount, err := strconv.Atoi(rawCount)
	if err != nil {
		return listingParams{}, serrors.Wrap(serrors.ErrBadRequest, err, "max_count must be an integer")
	}

	return listingParams{username: username, maxCount: maxCount}, nil
}

// GetPhotos returns the image URLs of the user's most recent photo posts.
func (h *Handler) GetPhotos(c *gin.Context) {
	h.mediaListing(c, domain.MediaTypePhoto)
}

// GetClips returns the video URLs of the user's most recent clip posts.
func (h *Handler) GetClips(c *gin.Context) {
	h.mediaListing(c, domain.MediaTypeClip)
}

func (h *Handler) mediaListing(c *gin.Context, mediaType domain.MediaType) {
	params, err := parseListingParams(c)
	if err != nil {
		writeError(c, err)

		return
	}

	links, err := h.deps.Fetcher.MediaURLs(c.Request.Context(), params.username, mediaType, params.maxCount)
	if err != nil {
		writeError(c, err)

		return
	}

	c.JSON(http.StatusOK, links)
}

// GetPosts returns the page URLs of the user's most recent posts holding
// media of the requested type.
func (h *Handler) GetPosts(c *gin.Context) {
	params, err := parseListingParams(c)
	if err != nil {
		writeError(c, err)

		return
	}

	mediaType, ok := domain.ParseMediaType(c.Query("media_type"))
	if !ok {
		writeError(c, serrors.With(serrors.ErrBadRequest, "media_type must be one of photo, clip, carousel"))

		return
	}

	links, err := h.deps.Fetcher.PostURLs(c.Request.Context(), params.username, mediaType, params.maxCount)
	if err != nil {
		writeError(c, err)

		return
	}

	c.JSON(http.StatusOK, links)
}
