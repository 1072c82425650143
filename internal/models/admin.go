package models

// AdminUser is a back-office account. Seeded from environment on startup.
type AdminUser struct {
	BaseModel
	Username     string `gorm:"uniqueIndex" json:"username"`
	PasswordHash string `json:"-"`
}
