// Package apiresponses centralizes JSON response writing for the HTTP API.
// Every error body has the shape {"message": "..."}.
package apiresponses
