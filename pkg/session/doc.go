/*
Package session implements preview session management and grid cache orchestration.

A preview session is identified by the key of the grid it produces (see density.GridKey).
The Manager serializes work on one key, locally with reference-counted mutexes and across
replicas with an optional distributed lock, so a grid requested concurrently is computed
once and then served from the store.
*/
package session
