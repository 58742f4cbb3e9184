package update_booking_status

// UpdateStatusRequest HTTP request model.
// Статус принимается в любом регистре, легаси-значение "Done"
// трактуется как "Completed".
type UpdateStatusRequest struct {
	Status string `json:"status"`
}
