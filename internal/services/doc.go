// Package services defines the error taxonomy shared by the conversion client
// and the packages that drive it. Errors are classified with sentinel markers
// (validation, transport, server, empty payload, configuration) so callers can
// decide how to surface a failure without parsing message text.
package services
