package identityservice

// ClientProfile профиль клиента из IdentityService
type ClientProfile struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// StaffProfile профиль мастера из IdentityService
type StaffProfile struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Specialization string `json:"specialization"` // Barber или Tattoo Artist
	IsActive       bool   `json:"is_active"`
}

// ErrorResponse модель ошибки от IdentityService
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
