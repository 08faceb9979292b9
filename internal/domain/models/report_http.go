package models

// Requests for the report HTTP endpoints.

type ReportRequest struct {
	Date string `query:"date" json:"date" validate:"omitempty,datetime=2006-01-02"`
}

type SendRequest struct {
	Date  string `query:"date" json:"date" validate:"omitempty,datetime=2006-01-02"`
	Force bool   `query:"force" json:"force"`
}

type HistoryRequest struct {
	Limit int `query:"limit" json:"limit" default:"30" validate:"gte=1,lte=365"`
}
