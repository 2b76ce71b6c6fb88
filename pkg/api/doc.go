// Package api hosts the Gin HTTP server: middleware, the operational
// endpoints (health, readiness, version, config, metrics), SPA serving and
// registration of the route controllers under /api.
package api
