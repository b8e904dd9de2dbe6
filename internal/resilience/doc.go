// Package resilience groups the reliability building blocks used around
// external calls: retry with exponential backoff (retry) and circuit
// breakers (circuitbreaker). Both the upstream news API and the assistant
// providers are remote HTTP services, so every outbound call path in this
// repo goes through these packages.
package resilience
