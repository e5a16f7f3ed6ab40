package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/figurehub/figurehub-backend/api/responses"
	"github.com/figurehub/figurehub-backend/pkg/config"
	"github.com/figurehub/figurehub-backend/pkg/db"
	pkgerrors "github.com/figurehub/figurehub-backend/pkg/errors"
	"github.com/figurehub/figurehub-backend/pkg/logger"
	"github.com/figurehub/figurehub-backend/pkg/redis"
)

const readinessPingTimeout = 3 * time.Second

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-FigureHub-Env", cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady reports ready only when every backing dependency answers a ping.
func HealthReady(cfg *config.Config, logg *logger.Logger, dbP db.Pinger, redisP redis.Pinger, pubsubP PubSubPinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-FigureHub-Env", cfg.App.Env)

		ctx, cancel := context.WithTimeout(r.Context(), readinessPingTimeout)
		defer cancel()

		checks := []struct {
			name string
			ping func(context.Context) error
		}{
			{"postgres", dbP.Ping},
			{"redis", redisP.Ping},
			{"pubsub", pubsubP.Ping},
		}
		for _, check := range checks {
			if check.ping == nil {
				continue
			}
			if err := check.ping(ctx); err != nil {
				logg.Warn(logg.WithField(ctx, "dependency", check.name), "readiness check failed")
				responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, check.name+" unavailable"))
				return
			}
		}

		responses.WriteSuccess(w, map[string]string{"status": "ready"})
	}
}

// PubSubPinger is satisfied by pkg/pubsub.Client.
type PubSubPinger interface {
	Ping(context.Context) error
}
