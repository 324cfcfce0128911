package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	ClientIDCtx    = "client_id"
	ClientRolesCtx = "client_roles"
)

// ClientID returns the id of the authenticated caller.
func ClientID(c *gin.Context) (uuid.UUID, bool) {
	raw, exists := c.Get(ClientIDCtx)
	if !exists {
		return uuid.Nil, false
	}
	id, ok := raw.(uuid.UUID)
	return id, ok
}

// ClientRoles returns the roles granted to the authenticated caller.
func ClientRoles(c *gin.Context) ([]string, bool) {
	raw, exists := c.Get(ClientRolesCtx)
	if !exists {
		return nil, false
	}
	roles, ok := raw.([]string)
	return roles, ok
}

// ParamUUID parses the named path parameter, answering 404 when it is not a
// valid id.
func ParamUUID(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": name + " not found"})
		return uuid.Nil, false
	}
	return id, true
}
