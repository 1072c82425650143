package models

type Category struct {
	BaseModel
	Name   string `gorm:"uniqueIndex" json:"name"`
	Image  string `json:"image"`
	Banner string `json:"banner"`
}

type Banner struct {
	BaseModel
	Title    string `json:"title"`
	ImageURL string `json:"imageUrl"`
	AltText  string `json:"altText"`
	Link     string `json:"link"`
	Active   bool   `gorm:"default:true" json:"active"`
}
