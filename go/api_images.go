package gatewayserver

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	imagesapp "github.com/thegunfirm/Mag-Lock-sub017/internal/domains/images/application"
	imagesports "github.com/thegunfirm/Mag-Lock-sub017/internal/domains/images/ports"
)

// ImagesAPI exposes the image key resolver.
type ImagesAPI struct {
	resolver imagesports.Resolver
}

func NewImagesAPI(resolver imagesports.Resolver) ImagesAPI {
	return ImagesAPI{resolver: resolver}
}

// Get /images/resolve
// Resolves a legacy image reference to a bucket URL, falling back to the reference
func (api *ImagesAPI) ResolveImage(c *gin.Context) {
	if api.resolver == nil {
		DefaultHandleFunc(c)
		return
	}
	ref, ok := requireRef(c)
	if !ok {
		return
	}
	res := api.resolver.Resolve(c.Request.Context(), ref)
	c.JSON(http.StatusOK, gin.H{
		"ok":       true,
		"original": ref,
		"url":      res.URLOr(ref),
		"status":   res.Status,
	})
}

// Get /images/url
// Redirects to the resolved image URL, or to the reference itself when unresolved
func (api *ImagesAPI) RedirectImage(c *gin.Context) {
	if api.resolver == nil {
		DefaultHandleFunc(c)
		return
	}
	ref, ok := requireRef(c)
	if !ok {
		return
	}
	c.Redirect(http.StatusFound, imagesapp.ResolveURL(c.Request.Context(), api.resolver, ref))
}

func requireRef(c *gin.Context) (string, bool) {
	ref := c.Query("ref")
	if strings.TrimSpace(ref) == "" {
		respondBadRequest(c, "ref query parameter is required")
		return "", false
	}
	return ref, true
}
