package entity

import (
	"time"

	"github.com/google/uuid"
)

// ClassificationRecord is one audit-trail row for a served
// classification.
type ClassificationRecord struct {
	ID             uuid.UUID `json:"id" gorm:"type:uuid;primary_key"`
	Task           TaskType  `json:"task" gorm:"type:varchar(20);not null;index"`
	Complaint      string    `json:"complaint" gorm:"type:text;not null"`
	Classification string    `json:"classification" gorm:"type:varchar(100);not null;index"`
	Justification  string    `json:"justification" gorm:"type:text"`
	Model          string    `json:"model" gorm:"type:varchar(200)"`
	RequestID      string    `json:"request_id" gorm:"type:varchar(64)"`
	LatencyMs      int64     `json:"latency_ms"`
	Cached         bool      `json:"cached" gorm:"default:false"`
	CreatedAt      time.Time `json:"created_at" gorm:"autoCreateTime;index"`
}

// TableName returns the table name for GORM
func (ClassificationRecord) TableName() string {
	return "classification_records"
}

// NewClassificationRecord creates a record with a fresh identifier.
func NewClassificationRecord(task TaskType, complaint, classification, justification, model, requestID string, latency time.Duration, cached bool) *ClassificationRecord {
	return &ClassificationRecord{
		ID:             uuid.New(),
		Task:           task,
		Complaint:      complaint,
		Classification: classification,
		Justification:  justification,
		Model:          model,
		RequestID:      requestID,
		LatencyMs:      latency.Milliseconds(),
		Cached:         cached,
	}
}
