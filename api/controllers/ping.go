package controllers

import (
	"net/http"

	"github.com/figurehub/figurehub-backend/api/responses"
)

// PublicPing answers unauthenticated liveness probes from clients.
func PublicPing() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteSuccess(w, map[string]string{"pong": "public"})
	}
}

// PrivatePing verifies the auth middleware chain end to end.
func PrivatePing() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteSuccess(w, map[string]string{"pong": "private"})
	}
}
