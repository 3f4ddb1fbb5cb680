package dto

// Credentials This is necessary to prevent any Mass Assignment Vulnerability attack
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"full_name,omitempty"`
	Rank     string `json:"rank,omitempty"`
	Phone    string `json:"phone,omitempty"`
}
