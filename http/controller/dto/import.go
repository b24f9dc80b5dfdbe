package dto

type CreateImportRequest struct {
	Kind      string `json:"kind" binding:"required,oneof=movies studios"`
	Bucket    string `json:"bucket"`
	ObjectKey string `json:"object_key" binding:"required"`
}
