// Package services implements the driving port interfaces.
// Services contain the core business logic — endpoint allocation, schema
// building, search dispatch and bulk index mutation — and orchestrate
// calls to the driven search client port.
//
// Services hold no mutable state of their own; the only shared mutable
// state is the external index itself, which is eventually consistent.
package services
