package dto

// PageResponse metadatos de página en respuestas (paginación 1-based).
type PageResponse struct {
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	Total      int `json:"total"`
	TotalPages int `json:"total_pages"`
}

// HasPrev indica si existe página anterior.
func (p PageResponse) HasPrev() bool { return p.Page > 1 }

// HasNext indica si existe página siguiente.
func (p PageResponse) HasNext() bool { return p.Page < p.TotalPages }

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// UploadErrorResponse cuerpo de error de /api/upload; el formulario lee el campo "error".
type UploadErrorResponse struct {
	Error string `json:"error"`
}
