// Package project implements dotted-path field projection over nested
// records.
//
// Field sets are configured per report kind at the call site, so projection
// stays generic over loosely typed records rather than static structs. A
// path like "customer.address.city" walks nested mappings one segment at a
// time; any absent segment or non-mapping intermediate yields the Missing
// sentinel. Absence is data, not failure: projection never returns an error.
package project
