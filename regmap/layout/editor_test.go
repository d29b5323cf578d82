package layout

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bleviet/fpga-lib-sub002/regmap"
)

// commitRecorder captures callback invocations for assertions.
type commitRecorder struct {
	rangeUpdates []FieldUpdate
	created      []regmap.BitField
	batches      [][]FieldUpdate
}

func (c *commitRecorder) callbacks() Callbacks {
	return Callbacks{
		OnUpdateFieldRange: func(idx int, r regmap.BitRange) {
			c.rangeUpdates = append(c.rangeUpdates, FieldUpdate{FieldIndex: idx, NewRange: r})
		},
		OnCreateField: func(f regmap.BitField) {
			c.created = append(c.created, f)
		},
		OnBatchUpdateFields: func(updates []FieldUpdate) {
			c.batches = append(c.batches, updates)
		},
	}
}

// threeFields is the resize fixture from the register model: a middle field
// with field neighbors on both sides, so the resize sandbox is [15:8] exactly.
func threeFields(t *testing.T) []regmap.BitField {
	t.Helper()
	return []regmap.BitField{
		mustF(t, "hi", 31, 16),
		mustF(t, "mid", 15, 8),
		mustF(t, "lo", 7, 0),
	}
}

func newTestEditor(t *testing.T, fields []regmap.BitField, rec *commitRecorder) *Editor {
	t.Helper()
	e, err := NewEditor(fields, 32, rec.callbacks(), nil)
	require.NoError(t, err)
	return e
}

func TestEditor_Resize(t *testing.T) {
	rec := &commitRecorder{}
	e := newTestEditor(t, threeFields(t), rec)

	require.NoError(t, e.Press(8))
	assert.Equal(t, StateResizing, e.State())
	require.NoError(t, e.Move(12))
	require.NoError(t, e.Release())
	assert.Equal(t, StateIdle, e.State())

	// The drag selecting [12:8] redefines the field wholesale; [15:13] becomes gap.
	require.Len(t, rec.rangeUpdates, 1)
	assert.Equal(t, FieldUpdate{FieldIndex: 1, NewRange: regmap.BitRange{MSB: 12, LSB: 8}}, rec.rangeUpdates[0])

	fields := e.Fields()
	assert.Equal(t, regmap.BitRange{MSB: 12, LSB: 8}, fields[1].Range)

	segments := e.Segments()
	checkCoverage(t, segments, 32)
	assert.Equal(t, gapSegment(regmap.BitRange{MSB: 15, LSB: 13}), segments[1])
}

func TestEditor_ResizeClamped(t *testing.T) {
	rec := &commitRecorder{}
	e := newTestEditor(t, threeFields(t), rec)

	// The sandbox is bounded by the adjacent fields: moves beyond clamp to it.
	require.NoError(t, e.Press(10))
	require.NoError(t, e.Move(25))
	require.NoError(t, e.Release())

	require.Len(t, rec.rangeUpdates, 1)
	assert.Equal(t, regmap.BitRange{MSB: 15, LSB: 10}, rec.rangeUpdates[0].NewRange)
}

func TestEditor_ResizeIntoAdjacentGap(t *testing.T) {
	fields := []regmap.BitField{
		mustF(t, "hi", 31, 24),
		mustF(t, "mid", 15, 8),
	}
	rec := &commitRecorder{}
	e := newTestEditor(t, fields, rec)

	// Gaps at [23:16] and [7:0] are part of mid's sandbox.
	require.NoError(t, e.Press(8))
	require.NoError(t, e.Move(20))
	require.NoError(t, e.Release())

	assert.Equal(t, regmap.BitRange{MSB: 20, LSB: 8}, rec.rangeUpdates[0].NewRange)
}

func TestEditor_ResizeToSingleBit(t *testing.T) {
	rec := &commitRecorder{}
	e := newTestEditor(t, threeFields(t), rec)

	// Press without moving: the selection is one bit, never zero width.
	require.NoError(t, e.Press(11))
	require.NoError(t, e.Release())

	require.Len(t, rec.rangeUpdates, 1)
	assert.Equal(t, regmap.BitRange{MSB: 11, LSB: 11}, rec.rangeUpdates[0].NewRange)
	assert.Equal(t, uint(1), rec.rangeUpdates[0].NewRange.Width())
}

func TestEditor_Create(t *testing.T) {
	fields := []regmap.BitField{mustF(t, "hi", 31, 24)}
	rec := &commitRecorder{}
	e, err := NewEditor(fields, 32, rec.callbacks(), &Options{
		Defaults: CreateDefaults{Name: "spare", Access: regmap.ReadOnly, Description: "carved out"},
	})
	require.NoError(t, err)

	require.NoError(t, e.Press(4))
	assert.Equal(t, StateCreating, e.State())
	require.NoError(t, e.Move(11))
	require.NoError(t, e.Release())

	require.Len(t, rec.created, 1)
	created := rec.created[0]
	assert.Equal(t, "spare", created.Name)
	assert.Equal(t, regmap.BitRange{MSB: 11, LSB: 4}, created.Range)
	assert.Equal(t, regmap.ReadOnly, created.Access)
	assert.Equal(t, "carved out", created.Description)

	require.Len(t, e.Fields(), 2)
	checkCoverage(t, e.Segments(), 32)
}

func TestEditor_CreateClampedToGap(t *testing.T) {
	fields := []regmap.BitField{mustF(t, "mid", 15, 8)}
	rec := &commitRecorder{}
	e := newTestEditor(t, fields, rec)

	// The create sandbox is the contiguous gap [7:0]; dragging into the
	// field clamps at its edge.
	require.NoError(t, e.Press(3))
	require.NoError(t, e.Move(12))
	require.NoError(t, e.Release())

	require.Len(t, rec.created, 1)
	assert.Equal(t, regmap.BitRange{MSB: 7, LSB: 3}, rec.created[0].Range)
}

func TestEditor_CreateUniqueName(t *testing.T) {
	fields := []regmap.BitField{mustF(t, "field", 31, 24)}
	rec := &commitRecorder{}
	e := newTestEditor(t, fields, rec)

	require.NoError(t, e.Press(0))
	require.NoError(t, e.Release())

	require.Len(t, rec.created, 1)
	assert.Equal(t, "field_1", rec.created[0].Name)
}

func TestEditor_Cancel(t *testing.T) {
	rec := &commitRecorder{}
	e := newTestEditor(t, threeFields(t), rec)
	before := e.Fields()

	require.NoError(t, e.Press(10))
	require.NoError(t, e.Move(14))
	e.Cancel()

	assert.Equal(t, StateIdle, e.State())
	assert.Equal(t, before, e.Fields(), "cancel must not mutate the layout")
	assert.Empty(t, rec.rangeUpdates)
	assert.Empty(t, rec.created)
	assert.Empty(t, rec.batches)

	// A new gesture starts cleanly after cancel.
	require.NoError(t, e.Press(10))
	require.NoError(t, e.Release())
	assert.Len(t, rec.rangeUpdates, 1)
}

func TestEditor_GestureExclusion(t *testing.T) {
	rec := &commitRecorder{}
	e := newTestEditor(t, threeFields(t), rec)

	require.NoError(t, e.Press(10))
	require.ErrorIs(t, e.Press(4), ErrGestureActive)
	require.ErrorIs(t, e.PressReorder(4), ErrGestureActive)
	require.NoError(t, e.Release())

	require.ErrorIs(t, e.Move(5), ErrNoGesture)
	require.ErrorIs(t, e.Release(), ErrNoGesture)
}

func TestEditor_PressValidation(t *testing.T) {
	rec := &commitRecorder{}
	e := newTestEditor(t, threeFields(t), rec)

	require.ErrorIs(t, e.Press(32), ErrOutOfRange)
	require.ErrorIs(t, e.PressReorder(32), ErrOutOfRange)

	gappy := newTestEditor(t, []regmap.BitField{mustF(t, "hi", 31, 24)}, &commitRecorder{})
	require.ErrorIs(t, gappy.PressReorder(3), ErrNotOnField)
}

func TestEditor_VisualFeedback(t *testing.T) {
	rec := &commitRecorder{}
	e := newTestEditor(t, threeFields(t), rec)

	// Idle: no highlight anywhere.
	assert.False(t, e.InNewRange(10))
	assert.False(t, e.IsDiscarded(10))

	require.NoError(t, e.Press(8))
	require.NoError(t, e.Move(12))

	sel, ok := e.Selection()
	require.True(t, ok)
	assert.Equal(t, regmap.BitRange{MSB: 12, LSB: 8}, sel)

	assert.True(t, e.InNewRange(10))
	assert.False(t, e.InNewRange(14))
	// Bits leaving the field show as discarded until release.
	assert.True(t, e.IsDiscarded(14))
	assert.False(t, e.IsDiscarded(10))
	assert.False(t, e.IsDiscarded(20), "bits outside the field are never discarded")

	// Feedback is derived, not stateful: nothing committed yet.
	assert.Equal(t, regmap.BitRange{MSB: 15, LSB: 8}, e.Fields()[1].Range)

	e.Cancel()
	_, ok = e.Selection()
	assert.False(t, ok)
}
