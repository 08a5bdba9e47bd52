// Package abctest builds synthetic Ogawa archives in memory for tests.
//
// Two levels are offered. [Writer] lays out raw groups and data chunks and
// is used to produce malformed containers. [Archive] describes a whole
// Alembic hierarchy (objects, properties, samples, metadata and time
// samplings) and serializes it the way a conforming writer would,
// including changed-index compression of repeated samples.
package abctest
