package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/bookapi/internal/audit"
	"github.com/mrlokans/bookapi/internal/database"
	"github.com/mrlokans/bookapi/internal/database/books"
	"github.com/mrlokans/bookapi/internal/schema"
)

type BooksController struct {
	validator    *schema.Validator
	auditService *audit.Service
}

func NewBooksController(validator *schema.Validator, auditService *audit.Service) *BooksController {
	if validator == nil {
		validator = schema.NewValidator(nil)
	}
	return &BooksController{
		validator:    validator,
		auditService: auditService,
	}
}

// repository builds a books repository on the request's store session.
func (controller *BooksController) repository(c *gin.Context) (*books.Repository, error) {
	session, ok := sessionFrom(c)
	if !ok {
		return nil, database.ErrSessionClosed
	}
	db, err := session.DB()
	if err != nil {
		return nil, err
	}
	return books.NewRepository(db), nil
}

// CreateBook adds a new book.
// POST /books/
func (controller *BooksController) CreateBook(c *gin.Context) {
	var req schema.BookCreate
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, schema.FromDecodeError(err), "decode book")
		return
	}
	if err := controller.validator.ValidateCreate(req); err != nil {
		respondError(c, err, "validate book")
		return
	}

	repo, err := controller.repository(c)
	if err != nil {
		respondInternalError(c, err, "acquire session")
		return
	}

	book, err := repo.CreateBook(req)
	if err != nil {
		respondInternalError(c, err, "create book")
		return
	}

	if controller.auditService != nil {
		controller.auditService.LogBookCreate(book, requestMeta(c))
	}
	respondCreated(c, schema.NewBookResponse(book))
}

// ListBooks returns a page of books in storage order.
// GET /books/?skip=&limit=
func (controller *BooksController) ListBooks(c *gin.Context) {
	page, err := schema.ParsePage(c.Request.URL.Query())
	if err != nil {
		respondError(c, err, "parse page")
		return
	}

	repo, err := controller.repository(c)
	if err != nil {
		respondInternalError(c, err, "acquire session")
		return
	}

	result, err := repo.ListBooks(page)
	if err != nil {
		respondInternalError(c, err, "list books")
		return
	}
	c.JSON(http.StatusOK, schema.NewBookResponses(result))
}

// SearchBooks filters books by title, author and year.
// GET /books/search/?title=&author=&year=&skip=&limit=
func (controller *BooksController) SearchBooks(c *gin.Context) {
	criteria, page, err := schema.ParseSearch(c.Request.URL.Query())
	if err != nil {
		respondError(c, err, "parse search")
		return
	}

	repo, err := controller.repository(c)
	if err != nil {
		respondInternalError(c, err, "acquire session")
		return
	}

	result, err := repo.SearchBooks(criteria, page)
	if err != nil {
		respondInternalError(c, err, "search books")
		return
	}
	c.JSON(http.StatusOK, schema.NewBookResponses(result))
}

// GetBook returns a single book.
// GET /books/:id
func (controller *BooksController) GetBook(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	repo, err := controller.repository(c)
	if err != nil {
		respondInternalError(c, err, "acquire session")
		return
	}

	book, err := repo.GetBookByID(id)
	if errors.Is(err, books.ErrBookNotFound) {
		respondNotFound(c, schema.NotFoundMessage(id))
		return
	}
	if err != nil {
		respondInternalError(c, err, "get book")
		return
	}
	c.JSON(http.StatusOK, schema.NewBookResponse(book))
}

// UpdateBook applies a partial update. Omitted fields are left alone and an
// explicit null year clears it.
// PUT /books/:id
func (controller *BooksController) UpdateBook(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req schema.BookUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, schema.FromDecodeError(err), "decode book update")
		return
	}
	if err := controller.validator.ValidateUpdate(req); err != nil {
		respondError(c, err, "validate book update")
		return
	}

	repo, err := controller.repository(c)
	if err != nil {
		respondInternalError(c, err, "acquire session")
		return
	}

	book, err := repo.UpdateBook(id, req)
	if errors.Is(err, books.ErrBookNotFound) {
		respondNotFound(c, schema.NotFoundMessage(id))
		return
	}
	if err != nil {
		respondInternalError(c, err, "update book")
		return
	}

	if controller.auditService != nil && !req.IsEmpty() {
		controller.auditService.LogBookUpdate(book, req.Changes(), requestMeta(c))
	}
	c.JSON(http.StatusOK, schema.NewBookResponse(book))
}

// DeleteBook removes a book permanently.
// DELETE /books/:id
func (controller *BooksController) DeleteBook(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	repo, err := controller.repository(c)
	if err != nil {
		respondInternalError(c, err, "acquire session")
		return
	}

	deleted, err := repo.DeleteBook(id)
	if err != nil {
		respondInternalError(c, err, "delete book")
		return
	}
	if !deleted {
		respondNotFound(c, schema.NotFoundMessage(id))
		return
	}

	if controller.auditService != nil {
		controller.auditService.LogBookDelete(id, requestMeta(c))
	}
	respondSuccess(c, schema.DeletedMessage(id))
}
