// Package table implements the Table aggregate: the occupancy state machine
// for physical seating units, including reservations with a fixed expiry
// window and merge groups (a primary table heading one or more members that
// share its occupancy).
//
// Tables are the principal shared, mutable resource in the system. All
// mutation goes through the aggregate's methods; the repository only
// persists what the aggregate already validated.
package table
