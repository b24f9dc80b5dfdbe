package entity

type Director struct {
	ID        uint   `json:"id" gorm:"primaryKey"`
	FirstName string `json:"first_name" binding:"required" gorm:"type:varchar(255);not null;index:idx_directors_name"`
	LastName  string `json:"last_name" binding:"required" gorm:"type:varchar(255);not null;index:idx_directors_name"`

	Movies []Movie `json:"movies,omitempty" gorm:"foreignKey:DirectorID"`
}

type Actor struct {
	ID        uint   `json:"id" gorm:"primaryKey"`
	FirstName string `json:"first_name" binding:"required" gorm:"type:varchar(255);not null;index:idx_actors_name"`
	LastName  string `json:"last_name" binding:"required" gorm:"type:varchar(255);not null;index:idx_actors_name"`

	Movies []Movie `json:"movies,omitempty" gorm:"many2many:movie_actors"`
}
