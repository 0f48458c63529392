// Package metrics expone la instrumentación Prometheus del servicio.
//
// Se registra en el registry por defecto al importar el paquete; el router monta
// /metrics con promhttp a través del adaptador de fiber.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "stock_intake"

// Resultados posibles de una subida.
const (
	UploadOK           = "ok"
	UploadInvalid      = "invalid"
	UploadStorageError = "storage_error"
	UploadDBError      = "db_error"
)

var (
	// RequestDuration latencia de cada petición HTTP por método, ruta y status.
	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duración de las peticiones HTTP en segundos.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "route", "status"},
	)

	// UploadsTotal cuenta las subidas por resultado.
	UploadsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "uploads_total",
			Help:      "Total de subidas de stock por resultado.",
		},
		[]string{"result"},
	)

	// ExportsTotal cuenta las exportaciones generadas por formato.
	ExportsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "exports_total",
			Help:      "Total de exportaciones generadas por formato.",
		},
		[]string{"format"},
	)
)

func init() {
	prometheus.MustRegister(RequestDuration, UploadsTotal, ExportsTotal)
}
