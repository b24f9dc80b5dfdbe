package entity

type Studio struct {
	ID   uint    `json:"id" gorm:"primaryKey"`
	Name string  `json:"name" binding:"required" gorm:"type:varchar(255);not null;index"`
	Logo *string `json:"logo,omitempty" gorm:"type:varchar(500)"`

	Movies []Movie `json:"movies,omitempty" gorm:"foreignKey:StudioID"`
}
