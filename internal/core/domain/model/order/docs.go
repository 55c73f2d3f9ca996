// Package order implements the Order aggregate: line items with
// quantity-combining semantics, GST totals derived on every mutation, and a
// monotonic lifecycle from device-local Temporary through staff-owned
// Ongoing to manager-owned Transferred and terminal Settled/Cancelled.
//
// One parametrized aggregate covers every owner role; the owning side is a
// consequence of the status, not a separate entity variant.
package order
