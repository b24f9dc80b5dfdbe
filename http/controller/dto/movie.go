package dto

type ListMoviesRequest struct {
	Page       int  `form:"page,default=1" binding:"omitempty,min=1"`
	PerPage    int  `form:"per_page,default=20" binding:"omitempty,min=1,max=100"`
	StudioID   uint `form:"studio_id"`
	DirectorID uint `form:"director_id"`
	ActorID    uint `form:"actor_id"`
	TagID      uint `form:"tag_id"`
}
