package dto

// CountResponse 数量
type CountResponse struct {
	Count int64 `json:"count" example:"3"`
}
