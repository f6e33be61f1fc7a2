// Package frames provides coarse simulation frame counters.
//
// The simulation host advances a frame index many times per second. Code that
// only needs a low-frequency heartbeat shifts the index right, e.g. index>>8
// changes roughly every four seconds at 60 frames per second.
//
// Clock derives the index from elapsed monotonic time at a fixed frame rate,
// which is how the CLI host emulates the simulation. Counter is advanced
// explicitly by a host loop that owns its own notion of frames.
//
//	clock := frames.NewClock(60)
//	epoch := clock.CurrentFrame() >> 8
package frames
