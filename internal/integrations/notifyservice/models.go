package notifyservice

// Notification уведомление пользователю о смене статуса записи
type Notification struct {
	RecipientID string `json:"recipient_id"`
	Subject     string `json:"subject"`
	Message     string `json:"message"`
}

// VerificationMessage сообщение с кодом подтверждения
type VerificationMessage struct {
	RecipientID string `json:"recipient_id"`
	Code        string `json:"code"`
	TTLSeconds  int    `json:"ttl_seconds"`
}
