package entities

import "fmt"

// Book is a single record in the books table. Year is nil when the
// publication year was not specified.
type Book struct {
	ID     uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Title  string `gorm:"index;not null;size:200" json:"title"`
	Author string `gorm:"index;not null;size:100" json:"author"`
	Year   *int   `json:"year"`
}

func (Book) TableName() string {
	return "books"
}

func (b Book) String() string {
	year := "not specified"
	if b.Year != nil {
		year = fmt.Sprintf("%d", *b.Year)
	}
	return fmt.Sprintf("Book(id=%d, title=%q, author=%q, year=%s)", b.ID, b.Title, b.Author, year)
}
