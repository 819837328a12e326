package application

import "venuenouveau/contexts/pricing-catalog/pricing-package-service/ports"

type noopMetrics struct{}

func (noopMetrics) VersionRecorded(string) {}
func (noopMetrics) Approved(string)        {}

func ResolveMetrics(metrics ports.WorkflowMetrics) ports.WorkflowMetrics {
	if metrics != nil {
		return metrics
	}
	return noopMetrics{}
}
