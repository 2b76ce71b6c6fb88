// Package blogger reads posts from the Blogger v3 API and turns the latest
// one into a subscriber notification.
package blogger
