// Package audit records subscriber and notification events and forwards them
// to sinks: the structured log always, and Kafka when brokers are configured.
package audit
