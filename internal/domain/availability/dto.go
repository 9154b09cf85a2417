package availability

// CalendarResponse for GET /rooms/{id}/availability
type CalendarResponse struct {
	RoomID     string `json:"room_id"`
	TotalStock int    `json:"total_stock"`
	From       string `json:"from"`
	To         string `json:"to"`
	Days       []Day  `json:"days"`
}
