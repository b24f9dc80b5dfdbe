package entity

import (
	"time"
)

type Movie struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	Title        string    `json:"title" binding:"required" gorm:"type:varchar(255);not null;index"`
	Year         int       `json:"year" gorm:"not null"`
	Poster       *string   `json:"poster,omitempty" gorm:"type:varchar(500)"`
	DownloadLink *string   `json:"download_link,omitempty" gorm:"type:varchar(2048)"`
	Format       *string   `json:"format,omitempty" gorm:"type:varchar(100)"`
	FileSize     *string   `json:"file_size,omitempty" gorm:"type:varchar(50)"`
	Duration     *string   `json:"duration,omitempty" gorm:"type:varchar(20)"`
	AddedAt      time.Time `json:"added_at" gorm:"not null;index"`
	CreatedAt    time.Time `json:"created_at" gorm:"not null;autoCreateTime"`
	UpdatedAt    time.Time `json:"updated_at" gorm:"autoUpdateTime"`

	StudioID   *uint `json:"studio_id,omitempty" gorm:"index"`
	DirectorID *uint `json:"director_id,omitempty" gorm:"index"`

	Studio   *Studio   `json:"studio,omitempty" gorm:"foreignKey:StudioID"`
	Director *Director `json:"director,omitempty" gorm:"foreignKey:DirectorID"`
	Actors   []Actor   `json:"actors,omitempty" gorm:"many2many:movie_actors;constraint:OnDelete:CASCADE"`
	Tags     []Tag     `json:"tags,omitempty" gorm:"many2many:movie_tags;constraint:OnDelete:CASCADE"`
}
