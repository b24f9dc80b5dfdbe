package entity

type Tag struct {
	ID    uint   `json:"id" gorm:"primaryKey"`
	Name  string `json:"name" binding:"required" gorm:"type:varchar(100);not null;index"`
	Color string `json:"color" gorm:"type:varchar(7);not null"`

	Movies []Movie `json:"movies,omitempty" gorm:"many2many:movie_tags"`
}
