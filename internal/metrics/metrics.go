// Package metrics содержит счётчики Prometheus для валидации доступа.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// ValidationsTotal считает решения о допуске по типу идентификатора,
// результату и вычисленному статусу.
var ValidationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "gymcontrol_validations_total",
		Help: "Access validation decisions by identifier type, result and status.",
	},
	[]string{"type", "result", "status"},
)

// ResultLabel возвращает значение метки result для решения.
func ResultLabel(admit bool) string {
	if admit {
		return "admit"
	}
	return "deny"
}
