// Package books provides database operations for book records.
//
// # Usage
//
//	repo := books.NewRepository(db)
//	book, err := repo.CreateBook(schema.BookCreate{Title: "War and Peace", Author: "Leo Tolstoy"})
//	found, err := repo.SearchBooks(schema.SearchCriteria{Author: &author}, schema.DefaultPage())
//
// Callers are expected to validate payloads before handing them over.
package books

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/mrlokans/bookapi/internal/entities"
	"github.com/mrlokans/bookapi/internal/schema"
)

// ErrBookNotFound is returned when no book has the requested id.
var ErrBookNotFound = errors.New("book not found")

// Repository handles all book database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new books repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// CreateBook inserts a book and returns it with its assigned id.
func (r *Repository) CreateBook(data schema.BookCreate) (*entities.Book, error) {
	book := &entities.Book{
		Title:  data.Title,
		Author: data.Author,
		Year:   data.Year,
	}
	if err := r.db.Create(book).Error; err != nil {
		return nil, fmt.Errorf("create book: %w", err)
	}
	return book, nil
}

// GetBookByID retrieves a book by its ID.
func (r *Repository) GetBookByID(id uint) (*entities.Book, error) {
	var book entities.Book
	err := r.db.First(&book, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrBookNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get book %d: %w", id, err)
	}
	return &book, nil
}

// ListBooks returns books in storage order.
func (r *Repository) ListBooks(page schema.Page) ([]entities.Book, error) {
	return r.SearchBooks(schema.SearchCriteria{}, page)
}

// UpdateBook applies the supplied fields of a partial update in a single
// transaction. An explicit null year clears it; omitted fields are untouched.
// The write is one UPDATE statement; the row is re-read afterwards.
func (r *Repository) UpdateBook(id uint, data schema.BookUpdate) (*entities.Book, error) {
	var book entities.Book
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if !data.IsEmpty() {
			result := tx.Model(&entities.Book{}).Where("id = ?", id).Updates(data.Changes())
			if result.Error != nil {
				return result.Error
			}
			if result.RowsAffected == 0 {
				return ErrBookNotFound
			}
		}

		if err := tx.First(&book, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrBookNotFound
			}
			return err
		}
		return nil
	})
	if errors.Is(err, ErrBookNotFound) {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("update book %d: %w", id, err)
	}
	return &book, nil
}

// DeleteBook hard deletes a book. Returns false when there was nothing to delete.
func (r *Repository) DeleteBook(id uint) (bool, error) {
	result := r.db.Delete(&entities.Book{}, id)
	if result.Error != nil {
		return false, fmt.Errorf("delete book %d: %w", id, result.Error)
	}
	return result.RowsAffected > 0, nil
}

// SearchBooks returns books matching every supplied criterion. Title and
// author are case-insensitive substring matches, year is exact. Books
// without a year never match a year criterion. Case folding relies on the
// casefold function registered by database.DriverName.
func (r *Repository) SearchBooks(criteria schema.SearchCriteria, page schema.Page) ([]entities.Book, error) {
	page = page.Normalize()

	query := r.db.Model(&entities.Book{})
	if criteria.Title != nil {
		query = query.Where(`casefold(title) LIKE ? ESCAPE '\'`, containsPattern(*criteria.Title))
	}
	if criteria.Author != nil {
		query = query.Where(`casefold(author) LIKE ? ESCAPE '\'`, containsPattern(*criteria.Author))
	}
	if criteria.Year != nil {
		query = query.Where("year = ?", *criteria.Year)
	}

	books := make([]entities.Book, 0)
	err := query.Order("id ASC").Offset(page.Skip).Limit(page.Limit).Find(&books).Error
	if err != nil {
		return nil, fmt.Errorf("search books: %w", err)
	}
	return books, nil
}

// CountBooks returns the total number of stored books.
func (r *Repository) CountBooks() (int64, error) {
	var total int64
	err := r.db.Model(&entities.Book{}).Count(&total).Error
	return total, err
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern builds a lowercase LIKE pattern matching s anywhere, with
// LIKE wildcards in s matched literally.
func containsPattern(s string) string {
	return "%" + likeEscaper.Replace(strings.ToLower(s)) + "%"
}
