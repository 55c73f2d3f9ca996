// Package transfer holds the manager-side projection of the staff-to-manager
// order handoff. The projection is derived once per order at transfer time
// and is what the manager's pending-work views read.
package transfer
