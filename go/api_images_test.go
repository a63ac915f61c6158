package gatewayserver

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	imagesmemory "github.com/thegunfirm/Mag-Lock-sub017/internal/domains/images/adapters/memory"
	imagesapp "github.com/thegunfirm/Mag-Lock-sub017/internal/domains/images/application"
)

func newImagesRouter(enabled bool, keys ...string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	resolver := imagesapp.NewResolver(imagesapp.Config{Enabled: enabled, BaseURL: "https://cdn.example.com/"}, imagesmemory.NewProber(keys...))
	return NewRouterWithGinEngine(gin.New(), ApiHandleFunctions{ImagesAPI: NewImagesAPI(resolver)})
}

func TestResolveImage(t *testing.T) {
	router := newImagesRouter(true, "rsr/standard/AAC17-22G3_1.jpg")

	rec := do(router, http.MethodGet, "/images/resolve?ref=AAC17-22G3_1.JPG", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"ok":true,"original":"AAC17-22G3_1.JPG","url":"https://cdn.example.com/rsr/standard/AAC17-22G3_1.jpg","status":"resolved"}`, rec.Body.String())

	rec = do(router, http.MethodGet, "/images/resolve?ref=logo.svg", "")
	require.JSONEq(t, `{"ok":true,"original":"logo.svg","url":"logo.svg","status":"unmatched"}`, rec.Body.String())
}

func TestResolveImage_Disabled(t *testing.T) {
	router := newImagesRouter(false, "rsr/standard/AAC17-22G3_1.jpg")

	rec := do(router, http.MethodGet, "/images/resolve?ref=AAC17-22G3_1.JPG", "")
	require.JSONEq(t, `{"ok":true,"original":"AAC17-22G3_1.JPG","url":"AAC17-22G3_1.JPG","status":"disabled"}`, rec.Body.String())
}

func TestResolveImage_MissingRef(t *testing.T) {
	router := newImagesRouter(true)

	rec := do(router, http.MethodGet, "/images/resolve", "")
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.JSONEq(t, `{"ok":false,"error":"ref query parameter is required"}`, rec.Body.String())
}

func TestRedirectImage(t *testing.T) {
	router := newImagesRouter(true, "rsr/standard/AAC17-22G3_1.jpg")

	rec := do(router, http.MethodGet, "/images/url?ref=AAC17-22G3_1.JPG", "")
	require.Equal(t, http.StatusFound, rec.Code)
	require.Equal(t, "https://cdn.example.com/rsr/standard/AAC17-22G3_1.jpg", rec.Header().Get("Location"))

	rec = do(router, http.MethodGet, "/images/url?ref=AAC99-00X0_2.JPG", "")
	require.Equal(t, http.StatusFound, rec.Code)
	require.Equal(t, "AAC99-00X0_2.JPG", rec.Header().Get("Location"))

	rec = do(router, http.MethodGet, "/images/url", "")
	require.Equal(t, http.StatusBadRequest, rec.Code)
}
