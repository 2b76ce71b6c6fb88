// Package mail delivers blog notifications to subscribers: an SMTP sender,
// the notification HTML template and the fan-out notifier that attempts one
// independent delivery per recipient.
package mail
