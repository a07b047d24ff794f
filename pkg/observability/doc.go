/*
Package observability provides tools for monitoring the density engine.

It includes Prometheus collectors fed by lifecycle hooks, structured logging
hooks, and helpers to fan a single event out to several observers.
*/
package observability
