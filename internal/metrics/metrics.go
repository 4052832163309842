package metrics

import "github.com/prometheus/client_golang/prometheus"

// NewAssignmentsTotal returns a Prometheus counter for successful load assignments
func NewAssignmentsTotal() prometheus.Counter {
	return prometheus.NewCounter(prometheus.CounterOpts{
		Name: "assignments_total",
		Help: "Total number of loads successfully assigned to a driver",
	})
}

// NewAssignmentNoDriverTotal returns a Prometheus counter for assignment attempts that found no driver
func NewAssignmentNoDriverTotal() prometheus.Counter {
	return prometheus.NewCounter(prometheus.CounterOpts{
		Name: "assignment_no_driver_total",
		Help: "Total number of assignment attempts that exhausted all candidate trucks",
	})
}

// NewRateLimitExceededTotal returns a Prometheus counter for the number of rejected HTTP requests due to rate limiting
func NewRateLimitExceededTotal() prometheus.Counter {
	return prometheus.NewCounter(prometheus.CounterOpts{
		Name: "rate_limit_exceeded_total",
		Help: "Total number of rejected HTTP requests due to rate limiting",
	})
}

// NewGatewayRetriesTotal returns a Prometheus counter for the number of retry attempts performed by gateways
func NewGatewayRetriesTotal() prometheus.Counter {
	return prometheus.NewCounter(prometheus.CounterOpts{
		Name: "gateway_retries_total",
		Help: "Total number of retry attempts performed by gateways",
	})
}
