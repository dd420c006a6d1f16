// Package bench measures codecs.
//
// Measure is the timing primitive: it runs an operation a fixed number of times between
// two clock reads and returns the mean latency. There is no warm-up and no outlier
// removal, callers that need steadier numbers increase the iteration count or the number
// of rounds.
//
// A Runner applies Measure to every codec of a run. For each codec it times the encode
// loop, then times the decode loop on the artifact produced by the encode loop, verifies
// the last decoded batch against the input and finally stores the artifact, reads it back
// and checks that it is byte-identical and decodes to the same batch. Errors abort only
// the pass of the failing codec and are kept in its Result.
package bench
