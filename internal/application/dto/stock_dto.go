package dto

import "time"

// UploadStockRequest campos de texto del multipart de /api/upload.
// Quantity llega como texto y lo interpreta el caso de uso.
type UploadStockRequest struct {
	Name       string `form:"name"`
	Quantity   string `form:"quantity"`
	Dimensions string `form:"dimensions"`
	Barcode    string `form:"barcode"`
	Location   string `form:"location"`
}

// UploadStockResponse respuesta exitosa de la subida.
type UploadStockResponse struct {
	Success bool   `json:"success"`
	URL     string `json:"url"`
}

// StockResponse salida de una entrada de stock.
type StockResponse struct {
	ID         int64     `json:"id"`
	Name       string    `json:"name"`
	Quantity   int       `json:"quantity"`
	ImageURL   string    `json:"image_url"`
	UploadedAt time.Time `json:"uploaded_at"`
	Dimensions string    `json:"dimensions"`
	Barcode    string    `json:"barcode"`
	Location   string    `json:"location"`
}

// StockListResponse lista paginada de entradas.
type StockListResponse struct {
	Items []StockResponse `json:"items"`
	Page  PageResponse    `json:"page"`
}
