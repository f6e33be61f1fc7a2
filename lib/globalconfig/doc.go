// Package globalconfig defines the TM:PE global configuration payload.
//
// Config is inert tuning data read by the traffic simulation: lane changing
// costs, parking search parameters, congestion thresholds and so on. This
// package only knows the fields and their defaults; loading, saving,
// migrating and hot-reloading live in the lifecycle package.
//
// Fields missing from a persisted file keep the value from Default(), so
// adding a field never requires a schema version bump.
package globalconfig
