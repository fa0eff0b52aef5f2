package cache

import (
	"fmt"

	"instagrab/pkg/domain"
)

// Cache keys are built here so the formats don't spread across the code.

// MediaKey is the cache key for media URL listings of a profile.
func MediaKey(mediaType domain.MediaType, username string, maxCount int) string {
	return fmt.Sprintf("media:%s:%s:%d", mediaType, username, maxCount)
}

// PostsKey is the cache key for post page URL listings of a profile.
func PostsKey(mediaType domain.MediaType, username string, maxCount int) string {
	return fmt.Sprintf("posts:%s:%s:%d", mediaType, username, maxCount)
}
