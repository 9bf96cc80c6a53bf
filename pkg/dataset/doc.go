// Package dataset holds the in-memory client/contract/CAG records served by
// cagmock and the operations that read and mutate them.
//
// The records form a small hierarchy:
//
//	Client 1─N Contract 1─N OperationUnit 1─N AssignedCAG
//
// plus CAGMapping, a lookup table keyed by cagId that supplies carrier,
// account and group details when a new assignment is created.
//
// A Store owns two copies of the data: the seed it was built from and the live
// copy handlers read and write. Reads take a shared lock and return copies;
// mutations take the exclusive lock, so assignment ids stay unique under
// concurrent requests. Reset swaps the live copy back to the seed.
//
// Filtering is exact, case-sensitive string equality throughout. Nothing is
// ever deleted; AssignedCAG is the only collection that grows or changes.
package dataset
