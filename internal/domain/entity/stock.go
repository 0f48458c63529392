package entity

import "time"

// Stock representa una entrada de inventario registrada desde el formulario de subida.
// Se crea una sola vez (con su imagen ya almacenada) y nunca se modifica ni se borra.
type Stock struct {
	ID         int64 // asignado por la base de datos
	Name       string
	Quantity   int
	Dimensions string // texto libre
	Barcode    string // texto libre
	Location   string // obligatorio
	ImageURL   string // URL pública devuelta por el almacenamiento
	UploadedAt time.Time
}
