// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package server

import (
	"net/http"
	"reflect"

	"github.com/gin-gonic/gin"
)

// ok sends a 200 response. Slices are wrapped in {data: [...]}.
func ok(c *gin.Context, data any) {
	if data != nil && reflect.ValueOf(data).Kind() == reflect.Slice {
		c.JSON(http.StatusOK, gin.H{"data": data})
		return
	}
	c.JSON(http.StatusOK, data)
}

func badRequest(c *gin.Context, message string) {
	abort(c, http.StatusBadRequest, message)
}

func notFound(c *gin.Context, message string) {
	abort(c, http.StatusNotFound, message)
}

func internalError(c *gin.Context, err error) {
	abort(c, http.StatusInternalServerError, err.Error())
}

func abort(c *gin.Context, code int, message string) {
	c.AbortWithStatusJSON(code, gin.H{"code": code, "message": message})
}
