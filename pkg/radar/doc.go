// Package radar drives an LD2412 presence-detection radar over a raw
// serial byte pipe.
package radar

// The driver is strictly synchronous: every public operation either
// performs one config-bracketed command exchange or one telemetry
// capture, each bounded by a timeout. The port carries both command
// acks and streamed telemetry on the same wire, so the driver assumes
// exclusive ownership of it; callers must serialize all calls.
