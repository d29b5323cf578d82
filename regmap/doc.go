// Package regmap models the bit-level layout of hardware registers.
//
// # Overview
//
// A register is a fixed-width word at a byte offset on a bus, carved into
// named, typed bit fields. This package provides the value types for that
// model (BitRange, AccessType, BitField), the Register aggregate with
// access-type-aware field reads and writes, and RegisterArray for stride'd
// block-RAM style register banks.
//
// # Key Types
//
//   - BitRange: an inclusive [msb:lsb] span with a canonical text form
//   - BitField: an immutable named span with an access policy and reset value
//   - Register: an ordered, non-overlapping field collection bound to a bus offset
//   - RegisterArray: per-index Register construction over a repeated template
//   - Bus: the byte-addressable word transport registers read and write through
//
// # Field Access Semantics
//
// Field writes go through the field's AccessType transition function:
// ReadWrite overwrites, ReadWriteClear1 clears current bits where the written
// bits are 1, WriteOnceSelfClear sets written bits and arms a deferred clear,
// ReadOnly ignores the write (or rejects it in strict mode), and WriteOnly
// fields never read back their last written value.
//
// # Atomicity
//
// SetFieldValue and BulkWrite fold every change into a single bus write so a
// concurrent agent touching sibling fields in the same word never observes a
// torn update. Whole-layout changes install through SetFields, which validates
// and replaces the complete field list in one step.
//
// # Schema Boundary
//
// FieldDescriptor and RegisterDescriptor decode the YAML produced by the
// schema layer into validated model values, rejecting unknown access strings
// and malformed bit ranges instead of defaulting silently.
package regmap
