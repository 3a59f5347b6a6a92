package schema

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/mrlokans/bookapi/internal/entities"
)

// Field limits shared by the create and update schemas.
const (
	TitleMaxLength  = 200
	AuthorMaxLength = 100
	MinYear         = 1000
)

// BookCreate is the payload of POST /books/.
type BookCreate struct {
	Title  string `json:"title" validate:"required,min=1,max=200"`
	Author string `json:"author" validate:"required,min=1,max=100"`
	Year   *int   `json:"year" validate:"omitempty,gte=1000,notfuture"`
}

// BookUpdate is the payload of PUT /books/{id}. Every field is optional;
// an explicit null for Year clears the stored year.
type BookUpdate struct {
	Title  Optional[string] `json:"title"`
	Author Optional[string] `json:"author"`
	Year   Optional[int]    `json:"year"`
}

// UnmarshalJSON decodes the payload field by field so that type errors name
// the field they belong to. Unknown fields are ignored.
func (u *BookUpdate) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			return newValidationError(LocationBody, "", "must be a JSON object")
		}
		return err
	}
	if raw == nil {
		return newValidationError(LocationBody, "", "must be a JSON object")
	}

	ve := &ValidationError{}
	decodeField(raw, "title", &u.Title, "string", ve)
	decodeField(raw, "author", &u.Author, "string", ve)
	decodeField(raw, "year", &u.Year, "integer", ve)
	return ve.errOrNil()
}

func decodeField[T any](raw map[string]json.RawMessage, name string, dst *Optional[T], typeName string, ve *ValidationError) {
	data, ok := raw[name]
	if !ok {
		return
	}
	if err := dst.UnmarshalJSON(data); err != nil {
		*dst = Optional[T]{}
		ve.add(LocationBody, name, "must be of type "+typeName)
	}
}

// IsEmpty reports whether the update carries no fields at all.
func (u BookUpdate) IsEmpty() bool {
	return !u.Title.Set && !u.Author.Set && !u.Year.Set
}

// Changes returns the supplied fields keyed by column name. A cleared year
// maps to nil.
func (u BookUpdate) Changes() map[string]any {
	changes := make(map[string]any, 3)
	if u.Title.Set {
		changes["title"] = u.Title.Value
	}
	if u.Author.Set {
		changes["author"] = u.Author.Value
	}
	if u.Year.Set {
		changes["year"] = u.Year.Ptr()
	}
	return changes
}

// BookResponse mirrors a stored book, including its id.
type BookResponse struct {
	ID     uint   `json:"id"`
	Title  string `json:"title"`
	Author string `json:"author"`
	Year   *int   `json:"year"`
}

func NewBookResponse(book *entities.Book) BookResponse {
	return BookResponse{
		ID:     book.ID,
		Title:  book.Title,
		Author: book.Author,
		Year:   book.Year,
	}
}

func NewBookResponses(books []entities.Book) []BookResponse {
	out := make([]BookResponse, 0, len(books))
	for i := range books {
		out = append(out, NewBookResponse(&books[i]))
	}
	return out
}

// NotFoundMessage is the client-facing message for a missing book.
func NotFoundMessage(id uint) string {
	return fmt.Sprintf("Book with ID %d not found", id)
}

// DeletedMessage is the client-facing confirmation of a delete.
func DeletedMessage(id uint) string {
	return fmt.Sprintf("Book with ID %d successfully deleted", id)
}
