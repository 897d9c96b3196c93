// Package preflight verifies the local environment before conversions run:
// directory permissions and conversion service reachability.
package preflight
