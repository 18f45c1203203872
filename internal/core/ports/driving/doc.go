// Package driving defines the service contracts external actors call IN through.
//
// These are the "driving" or "primary" ports in hexagonal architecture.
// Job workers and the admin CLI depend on these interfaces; the services
// package implements them.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter or service package
package driving
