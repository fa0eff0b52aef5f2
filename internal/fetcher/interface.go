package fetcher

import (
	"context"

	"instagrab/pkg/domain"
)

//go:generate mockgen -package mockfetcher -source=interface.go -destination=mock/mockfetcher.go *
type Fetcher interface {
	MediaURLs(ctx context.Context, username string, mediaType domain.MediaType, maxCount int) (domain.Links, error)
	PostURLs(ctx context.Context, username string, mediaType domain.MediaType, maxCount int) (domain.Links, error)
}
