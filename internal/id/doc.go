// Package id generates the identifiers cagmock hands out.
//
//   - Sequential: prefixed, zero-padded counters such as OUCAG006 used for
//     assignment records.
//   - UUID: random v4 identifiers used for request correlation.
package id
