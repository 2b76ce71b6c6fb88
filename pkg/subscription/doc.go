// Package subscription implements the /api routes of the portfolio backend:
// public subscribe, unsubscribe and blog post endpoints, and the
// API-key protected subscriber listing and notification triggers.
package subscription
