/*
Package domain holds the core types shared across rcupdate: the Action
requested by an invocation, the tri-state Outcome of a single mutation
attempt, and the sentinel errors registry adapters translate their backend
conditions into.
*/
package domain
