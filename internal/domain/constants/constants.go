// Package constants holds shared domain-level constant values.
package constants

// Deployment environment names accepted in configuration.
const (
	// EnvDevelop marks a local or development deployment.
	EnvDevelop = "develop"
	// EnvProduction marks a production deployment.
	EnvProduction = "production"
)

// Pub/Sub provider names accepted in configuration.
const (
	// PubSubProviderInline records audit events synchronously in-process.
	PubSubProviderInline = "inline"
	// PubSubProviderLocal posts push messages to a local HTTP endpoint.
	PubSubProviderLocal = "local"
	// PubSubProviderGoogle publishes through Google Cloud Pub/Sub.
	PubSubProviderGoogle = "google"
)
