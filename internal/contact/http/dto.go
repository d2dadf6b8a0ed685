package http

import (
	"time"

	"github.com/nekogravitycat/transfer-booking-backend/internal/contact"
	"github.com/nekogravitycat/transfer-booking-backend/internal/pkg/request"
)

type ListMessagesRequest struct {
	request.ListParams
	Status string `form:"status" binding:"omitempty,oneof=new contacted resolved closed"`
}

type CreateMessageRequest struct {
	Name            string  `json:"name" binding:"required"`
	Email           string  `json:"email" binding:"required,email"`
	Phone           *string `json:"phone"`
	ServiceInterest string  `json:"serviceInterest" binding:"required"`
	Message         string  `json:"message" binding:"required"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

type MessageResponse struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	Email           string    `json:"email"`
	Phone           *string   `json:"phone"`
	ServiceInterest string    `json:"serviceInterest"`
	Message         string    `json:"message"`
	Status          string    `json:"status"`
	CreatedAt       time.Time `json:"createdAt"`
}

func NewMessageResponse(m *contact.Message) MessageResponse {
	return MessageResponse{
		ID:              m.ID,
		Name:            m.Name,
		Email:           m.Email,
		Phone:           m.Phone,
		ServiceInterest: m.ServiceInterest,
		Message:         m.Message,
		Status:          string(m.Status),
		CreatedAt:       m.CreatedAt,
	}
}
