package models

const (
	EnquiryStatusNew     = "new"
	EnquiryStatusRead    = "read"
	EnquiryStatusReplied = "replied"
)

type Enquiry struct {
	BaseModel
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Subject string `json:"subject"`
	Message string `json:"message"`
	Status  string `gorm:"default:new" json:"status"`
}
