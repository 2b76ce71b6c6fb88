// Package system holds logging helpers shared by the HTTP layer.
package system
