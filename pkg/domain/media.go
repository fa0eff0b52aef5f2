package domain

// MediaType classifies the kind of media attached to an Instagram post.
type MediaType string

const (
	// MediaTypePhoto is a single-image post.
	MediaTypePhoto MediaType = "photo"
	// MediaTypeClip is a video post (reel/clip).
	MediaTypeClip MediaType = "clip"
	// MediaTypeCarousel is a multi-media post. It has no selector of its own;
	// matching is done by probing the post for the requested inner media type.
	MediaTypeCarousel MediaType = "carousel"
)

// Selector returns the CSS selector that matches media elements of this type
// on a rendered post page. Carousel posts have no dedicated selector.
func (m MediaType) Selector() string {
	switch m {
	case MediaTypePhoto:
		return "img[style='object-fit: cover;']"
	case MediaTypeClip:
		return "video[type='video/mp4']"
	default:
		return ""
	}
}

// ParseMediaType converts a string into a known MediaType.
// The second return value reports whether the input was recognized.
func ParseMediaType(s string) (MediaType, bool) {
	switch MediaType(s) {
	case MediaTypePhoto, MediaTypeClip, MediaTypeCarousel:
		return MediaType(s), true
	default:
		return "", false
	}
}

// Links is the response payload for media and post URL listings.
type Links struct {
	// URLs holds the collected links in profile order. It is never nil.
	URLs []string `json:"urls"`
}

// NewLinks returns a Links value with a non-nil slice so the JSON
// representation is always an array.
func NewLinks(urls []string) Links {
	if urls == nil {
		urls = []string{}
	}

	return Links{URLs: urls}
}
