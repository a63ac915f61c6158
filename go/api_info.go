package gatewayserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// SecretStatusFunc reports "set" or "missing" per secret name.
type SecretStatusFunc func() map[string]string

// InfoAPI serves liveness and configuration presence checks.
type InfoAPI struct {
	serviceName string
	secrets     SecretStatusFunc
}

func NewInfoAPI(serviceName string, secrets SecretStatusFunc) InfoAPI {
	return InfoAPI{serviceName: serviceName, secrets: secrets}
}

// Get /
func (api *InfoAPI) Info(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"ok":        true,
		"service":   api.serviceName,
		"endpoints": Endpoints(),
	})
}

// Get /health
// Reports presence, never values, of required secrets.
func (api *InfoAPI) Health(c *gin.Context) {
	secrets := map[string]string{}
	if api.secrets != nil {
		secrets = api.secrets()
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "secrets": secrets})
}
