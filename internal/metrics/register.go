// Package metrics holds the registration helper shared by the packages that
// export Prometheus collectors.
package metrics

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
)

// ErrRegistrationFailed wraps any registration error other than a duplicate.
var ErrRegistrationFailed = errors.New("metrics: registration failed")

// Register registers c with reg. When an identical collector is already
// registered, the existing one is returned so that several engines sharing
// one registry add to the same series.
func Register[C prometheus.Collector](reg prometheus.Registerer, c C) (C, error) {
	if err := reg.Register(c); err != nil {
		var already prometheus.AlreadyRegisteredError
		if errors.As(err, &already) {
			if existing, ok := already.ExistingCollector.(C); ok {
				return existing, nil
			}
		}

		return c, errors.Join(ErrRegistrationFailed, err)
	}

	return c, nil
}
