package repository

import "gorm.io/gorm"

// DefaultPageSize is the number of items per listing page.
const DefaultPageSize = 10

// Page describes which slice of a listing to return.
type Page struct {
	Number int
	Size   int
}

// NewPage normalizes a requested page number into a Page with the default size.
func NewPage(number int) Page {
	if number < 1 {
		number = 1
	}
	return Page{Number: number, Size: DefaultPageSize}
}

func (p Page) offset() int {
	return (p.Number - 1) * p.Size
}

func paginate(p Page) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Offset(p.offset()).Limit(p.Size)
	}
}
