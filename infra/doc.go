// Package infra contains technical adapters such as the backend HTTP client,
// the MQTT position feed and metrics exporters. These packages should depend
// only on the interfaces defined in the core packages.
package infra
