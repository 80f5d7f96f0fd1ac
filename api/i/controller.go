package i

import "github.com/gin-gonic/gin"

// Controller registers a group of routes on the public and the protected API.
type Controller interface {
	RegisterPublic(*gin.RouterGroup)
	RegisterProtected(*gin.RouterGroup)
}
