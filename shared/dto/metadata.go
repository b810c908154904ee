package dto

import (
	"agenda/shared/constant"
	"agenda/shared/model"
	"agenda/shared/timezone"
	"time"
)

// Metadata is the audit block attached to every resource response.
type Metadata struct {
	CreatedAt  string `json:"created_at"`
	ModifiedAt string `json:"modified_at,omitempty"`
	CreatedBy  string `json:"created_by"`
	ModifiedBy string `json:"modified_by,omitempty"`
}

func formatAudit(t time.Time) string {
	if t.IsZero() {
		return ""
	}

	return timezone.Format(t, constant.DateFormat)
}

func (m *Metadata) FromModel(src model.Metadata) {
	m.CreatedAt = formatAudit(src.CreatedAt)
	m.ModifiedAt = formatAudit(src.ModifiedAt)
	m.CreatedBy = src.CreatedBy
	m.ModifiedBy = src.ModifiedBy
}
