package controllers

import (
	"context"
	"net/http"

	"go.uber.org/multierr"

	"github.com/sastaease/storefront-backend/api/responses"
	"github.com/sastaease/storefront-backend/pkg/config"
	pkgerrors "github.com/sastaease/storefront-backend/pkg/errors"
	"github.com/sastaease/storefront-backend/pkg/logger"
)

// Pinger is the health-check surface of a dependency.
type Pinger interface {
	Ping(context.Context) error
}

// NamedPinger pairs a dependency with the label reported on failure.
type NamedPinger struct {
	Name   string
	Pinger Pinger
}

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-SastaEase-Env", cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady pings every dependency and aggregates failures into one
// response, so a single probe names everything that is down.
func HealthReady(cfg *config.Config, logg *logger.Logger, pingers ...NamedPinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-SastaEase-Env", cfg.App.Env)

		var combined error
		failed := make([]string, 0, len(pingers))
		for _, p := range pingers {
			if p.Pinger == nil {
				continue
			}
			if err := p.Pinger.Ping(r.Context()); err != nil {
				combined = multierr.Append(combined, err)
				failed = append(failed, p.Name)
			}
		}

		if combined != nil {
			err := pkgerrors.Wrap(pkgerrors.CodeDependency, combined, "readiness check failed").
				WithDetails(map[string]any{"failed": failed})
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "ready"})
	}
}
