package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RootResponse describes the service.
type RootResponse struct {
	Message   string   `json:"message"`
	Version   string   `json:"version"`
	Endpoints []string `json:"endpoints"`
}

// Endpoints lists the public book routes.
var Endpoints = []string{
	"POST /books/ - Add a book (year optional)",
	"GET /books/ - Get all books",
	"GET /books/{id} - Get book by ID",
	"PUT /books/{id} - Update book",
	"DELETE /books/{id} - Delete book",
	"GET /books/search/ - Search books",
}

func rootHandler(version string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, RootResponse{
			Message:   "Welcome to Book API",
			Version:   version,
			Endpoints: Endpoints,
		})
	}
}
