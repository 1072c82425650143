package models

// Setting is a key/value pair looked up at use time, never cached.
type Setting struct {
	BaseModel
	Key   string `gorm:"uniqueIndex" json:"key"`
	Value string `json:"value"`
}
