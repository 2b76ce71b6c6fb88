// Package ratelimit provides per-IP rate limiting middleware for the public
// subscription and blog routes.
package ratelimit
