// Package search implements a recursive, cycle-safe search through an
// arbitrary in-memory object graph. Given a root value and a search item it
// reports every place the item occurs, either as a value or as text inside the
// structural path leading to a value.
//
// # Overview
//
// A search is a single depth-first walk driven by one dispatcher. For every
// node the dispatcher:
//  1. Skips the node when its path is in the excluded paths or its dynamic
//     type is in the excluded types. Nothing below a skipped node is visited.
//  2. Unwraps pointers and interfaces (pointers to structs are kept so that
//     methods declared on the pointer stay visible).
//  3. Chooses exactly one visitor, first match wins:
//     - string-like node and string-like item: substring match.
//     - string-like node and any other item: no match, no recursion.
//     - number-like node (ints, floats, complex, bool, time.Time, math/big)
//     or nil: equality match.
//     - map: mapping visitor with bracket paths.
//     - array: tuple visitor (Record arrays are walked as objects).
//     - set (map with struct{} elements): sequence visitor over sorted members,
//     after a capped advisory that positional paths are not meaningful.
//     - slice: sequence visitor.
//     - anything else: object visitor.
//
// # Paths
//
// Paths start at "root". Map and sequence children append "[key]", with
// string keys quoted ("root[1]['somewhere']"); object fields append ".name".
// Map keys and set members are visited in sorted order so that identical
// graphs always produce identical paths.
//
// # Matches
//
// A structural match is recorded by the mapping visitor when the child path
// contains the textual form of the item (fmt.Sprint). A value match is
// recorded when a string node contains the item, when a number node equals
// it, or when a sequence element is equal to it.
//
// # Objects
//
// Generic objects are classified once into one of four shapes:
//   - Record: implements Record, or is a proto.Message (fields through
//     protoreflect, in declaration order).
//   - SlotObject: implements Slotted; only the declared slots are read.
//   - FieldObject: a struct with exported fields. The `search` struct tag
//     renames ("name") or hides ("-") a field.
//   - Opaque: anything else. Its path is appended to Result.Unprocessed and
//     the walk continues.
//
// # Cycles
//
// Every recursive call carries the identities (address and type) of the
// containers on the current branch. A child whose identity is already on the
// branch is skipped without a match or an error. The ancestry is copied when a
// branch is extended, so siblings never see each other's entries.
//
// # Verbosity
//
// Verbosity 1 records matches as a PathSet; verbosity 2 and above records a
// PathValues map from path to the matched value. Empty buckets are dropped
// from the Result once the walk completes.
package search
