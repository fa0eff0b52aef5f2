package v1handler_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"instagrab/internal/api/handler/v1handler"
	mockfetcher "instagrab/internal/fetcher/mock"
	"instagrab/pkg/domain"
	"instagrab/pkg/logger"
	"instagrab/pkg/serrors"
)

func TestMain(m *testing.M) {
	// Initialize logger to avoid nil pointer deref during tests
	logger.Setup(logger.DevelopmentEnvironment)
	gin.SetMode(gin.TestMode)
	m.Run()
}

func newTestRouter(t *testing.T, f *mockfetcher.MockFetcher) *gin.Engine {
	t.Helper()
	sec, err := v1handler.NewSecHandler(nil)
	require.NoError(t, err)

	r := gin.New()
	v1handler.New(v1handler.Deps{Fetcher: f}).RegisterRoutes(r, sec)

	return r
}

func newMockFetcher(t *testing.T) *mockfetcher.MockFetcher {
	t.Helper()

	return mockfetcher.NewMockFetcher(gomock.NewController(t))
}

func doGet(r *gin.Engine, target string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))

	return rec
}

func TestGetPhotos_OK(t *testing.T) {
	f := newMockFetcher(t)
	f.EXPECT().MediaURLs(gomock.Any(), "someuser", domain.MediaTypePhoto, 3).
		Return(domain.NewLinks([]string{"https://cdn.example/a.jpg"}), nil)

	rec := doGet(newTestRouter(t, f), "/getPhotos?username=someuser&max_count=3")
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"urls":["https://cdn.example/a.jpg"]}`, rec.Body.String())
}

func TestGetPhotos_EmptyListingIsAnArray(t *testing.T) {
	f := newMockFetcher(t)
	f.EXPECT().MediaURLs(gomock.Any(), "someuser", domain.MediaTypePhoto, 3).
		Return(domain.NewLinks(nil), nil)

	rec := doGet(newTestRouter(t, f), "/getPhotos?username=someuser&max_count=3")
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"urls":[]}`, rec.Body.String())
}

func TestGetPhotos_MissingUsername(t *testing.T) {
	rec := doGet(newTestRouter(t, newMockFetcher(t)), "/getPhotos?max_count=3")
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.JSONEq(t, `{"detail":"username is required"}`, rec.Body.String())
}

func TestGetPhotos_MissingMaxCount(t *testing.T) {
	rec := doGet(newTestRouter(t, newMockFetcher(t)), "/getPhotos?username=someuser")
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.JSONEq(t, `{"detail":"max_count is required"}`, rec.Body.String())
}

func TestGetPhotos_NonIntegerMaxCount(t *testing.T) {
	rec := doGet(newTestRouter(t, newMockFetcher(t)), "/getPhotos?username=someuser&max_count=three")
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetPhotos_UnknownUserIsBadRequest(t *testing.T) {
	f := newMockFetcher(t)
	f.EXPECT().MediaURLs(gomock.Any(), "ghost", domain.MediaTypePhoto, 3).
		Return(domain.Links{}, serrors.With(serrors.ErrNotFound, "user not found: ghost"))

	rec := doGet(newTestRouter(t, f), "/getPhotos?username=ghost&max_count=3")
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.JSONEq(t, `{"detail":"user not found: ghost"}`, rec.Body.String())
}

func TestGetPhotos_InternalErrorsAreOpaque(t *testing.T) {
	f := newMockFetcher(t)
	f.EXPECT().MediaURLs(gomock.Any(), "someuser", domain.MediaTypePhoto, 3).
		Return(domain.Links{}, errors.New("browser crashed: secret detail"))

	rec := doGet(newTestRouter(t, f), "/getPhotos?username=someuser&max_count=3")
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	require.JSONEq(t, `{"detail":"internal error"}`, rec.Body.String())
}

func TestGetClips_OK(t *testing.T) {
	f := newMockFetcher(t)
	f.EXPECT().MediaURLs(gomock.Any(), "someuser", domain.MediaTypeClip, 2).
		Return(domain.NewLinks([]string{"https://cdn.example/v.mp4"}), nil)

	rec := doGet(newTestRouter(t, f), "/getClips?username=someuser&max_count=2")
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"urls":["https://cdn.example/v.mp4"]}`, rec.Body.String())
}

func TestGetPosts_OK(t *testing.T) {
	f := newMockFetcher(t)
	f.EXPECT().PostURLs(gomock.Any(), "someuser", domain.MediaTypeCarousel, 5).
		Return(domain.NewLinks([]string{"https://www.instagram.com/p/abc/"}), nil)

	rec := doGet(newTestRouter(t, f), "/getPosts?username=someuser&max_count=5&media_type=carousel")
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"urls":["https://www.instagram.com/p/abc/"]}`, rec.Body.String())
}

func TestGetPosts_UnknownMediaType(t *testing.T) {
	rec := doGet(newTestRouter(t, newMockFetcher(t)), "/getPosts?username=someuser&max_count=5&media_type=story")
	require.Equal(t, http.StatusBadRequest, rec.Code)
}
