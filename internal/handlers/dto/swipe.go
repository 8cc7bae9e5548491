package dto

type SwipeRequest struct {
	SwipedID  string `json:"swiped_id" binding:"required,uuid"`
	Direction string `json:"direction" binding:"required,oneof=left right"`
}
