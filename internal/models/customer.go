package models

// Customer is a phone-backed identity, created lazily on first verified
// login.
type Customer struct {
	BaseModel
	Phone string `gorm:"uniqueIndex" json:"phone"`
}
