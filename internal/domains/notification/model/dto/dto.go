package dto

import (
	"bookly/internal/domains/notification/model"
	"bookly/shared/constant"
)

type NotificationResponse struct {
	ID        string       `json:"id"`
	Type      model.Type   `json:"type"`
	Channel   string       `json:"channel"`
	Provider  string       `json:"provider"`
	Recipient string       `json:"recipient"`
	Subject   string       `json:"subject"`
	Status    model.Status `json:"status"`
	Error     string       `json:"error,omitempty"`
	CreatedAt string       `json:"created_at"`
}

func (r *NotificationResponse) FromModel(m model.Notification) {
	r.ID = m.ID
	r.Type = m.Type
	r.Channel = m.Channel
	r.Provider = m.Provider
	r.Recipient = m.Recipient
	r.Subject = m.Subject
	r.Status = m.Status
	r.Error = m.Error
	r.CreatedAt = m.CreatedAt.UTC().Format(constant.DateFormat)
}

func FromModels(models []model.Notification) []NotificationResponse {
	res := make([]NotificationResponse, len(models))
	for i, m := range models {
		res[i].FromModel(m)
	}

	return res
}

// ReminderRunResponse summarises one reminder batch.
type ReminderRunResponse struct {
	Processed int `json:"processed"`
	Sent      int `json:"sent"`
	Failed    int `json:"failed"`
	Skipped   int `json:"skipped"`
}
