package room

type RoomResponse struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Description  string   `json:"description,omitempty"`
	NightlyPrice int64    `json:"nightly_price"`
	TotalStock   int      `json:"total_stock"`
	ImageURL     string   `json:"image_url,omitempty"`
	Images       []string `json:"images"`
}

func RoomResponseFromEntity(r *Room) RoomResponse {
	images := []string(r.Images)
	if images == nil {
		images = []string{}
	}
	return RoomResponse{
		ID:           r.ID,
		Name:         r.Name,
		Description:  r.Description,
		NightlyPrice: r.NightlyPrice,
		TotalStock:   r.Stock(),
		ImageURL:     r.ImageURL,
		Images:       images,
	}
}
