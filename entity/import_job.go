package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

const (
	ImportKindMovies  = "movies"
	ImportKindStudios = "studios"

	ImportStatusPending   = "pending"
	ImportStatusRunning   = "running"
	ImportStatusCompleted = "completed"
	ImportStatusFailed    = "failed"
)

type ImportJob struct {
	ID          uuid.UUID      `json:"id" gorm:"type:uuid;primaryKey"`
	Kind        string         `json:"kind" binding:"required,oneof=movies studios" gorm:"not null;index"`
	Bucket      string         `json:"bucket" binding:"required" gorm:"type:varchar(255);not null"`
	ObjectKey   string         `json:"object_key" binding:"required" gorm:"type:varchar(1024);not null"`
	Status      string         `json:"status" gorm:"not null;index"`
	Result      datatypes.JSON `json:"result,omitempty"`
	Message     string         `json:"message,omitempty" gorm:"type:text"`
	InitiatorID string         `json:"initiator_id" gorm:"index"`
	CreatedAt   time.Time      `json:"created_at" gorm:"not null;autoCreateTime"`
	UpdatedAt   time.Time      `json:"updated_at" gorm:"autoUpdateTime"`
	StartedAt   *time.Time     `json:"started_at,omitempty"`
	FinishedAt  *time.Time     `json:"finished_at,omitempty"`
}
