package models

// Category is one of the seven fixed expense categories.
//
// Categories are seeded on migration and never changed through the API.
type Category struct {
	ID   int    `json:"id" gorm:"primaryKey;autoIncrement:false" example:"2"`
	Name string `json:"name" gorm:"uniqueIndex" example:"Food & Drink"`
}

func (c Category) Self() string {
	return "Category"
}
