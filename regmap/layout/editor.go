package layout

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/bleviet/fpga-lib-sub002/regmap"
)

// State is the editor's gesture state.
type State int

const (
	// StateIdle means no gesture is active.
	StateIdle State = iota

	// StateResizing means a press landed on a field and moves redefine its range.
	StateResizing

	// StateCreating means a press landed in a gap and moves span the new field.
	StateCreating

	// StateReordering means a field is being dragged to a new position.
	StateReordering
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateResizing:
		return "resizing"
	case StateCreating:
		return "creating"
	case StateReordering:
		return "reordering"
	}
	return fmt.Sprintf("state(%d)", int(s))
}

// Callbacks are the host's commit hooks. Each released gesture invokes
// exactly one of them; a cancelled gesture invokes none.
// OnBatchUpdateFields is required for reorder commits: a reorder can move
// every field at once, and applying the moves one by one against a
// concurrently read field list is a lost-update hazard.
type Callbacks struct {
	OnUpdateFieldRange  func(fieldIndex int, newRange regmap.BitRange)
	OnCreateField       func(field regmap.BitField)
	OnBatchUpdateFields func(updates []FieldUpdate)
}

// CreateDefaults seed fields committed by create gestures.
type CreateDefaults struct {
	// Name for the new field. Collisions with existing names get a numeric
	// suffix. Empty defaults to "field".
	Name string

	Access      regmap.AccessType
	Description string
}

// Options configures an Editor.
type Options struct {
	// Defaults seed fields committed by create gestures.
	Defaults CreateDefaults

	// Logger receives gesture transitions at Debug level.
	// Nil discards all output.
	Logger *slog.Logger
}

// session is the transient state of one gesture. It exists from press to
// release or cancel and is never persisted.
type session struct {
	anchorBit   uint
	currentBit  uint
	minBit      uint
	maxBit      uint
	targetField int // field index for resize and reorder; -1 for create
}

// Editor interprets press/move/release bit events against a register layout
// and commits one atomic mutation per gesture.
//
// The editor owns a copy of the field list taken at construction; it never
// holds a reference into the host's register. Commits update the copy and
// notify the host through Callbacks, whose handlers are expected to install
// the change as a single replacement (see regmap.Register.SetFields).
//
// The editor is single-threaded and event-driven: events are processed in
// arrival order, every computation is bounded by the word width, and a second
// press is rejected until the active gesture ends.
type Editor struct {
	widthBits uint
	fields    []regmap.BitField
	segments  []Segment
	cb        Callbacks
	defaults  CreateDefaults
	log       *slog.Logger

	state State
	sess  session
}

// NewEditor builds an editor over a copy of fields. A nil opts uses defaults.
func NewEditor(fields []regmap.BitField, widthBits uint, cb Callbacks, opts *Options) (*Editor, error) {
	e := &Editor{
		widthBits: widthBits,
		fields:    append([]regmap.BitField(nil), fields...),
		cb:        cb,
		log:       slog.New(slog.NewTextHandler(io.Discard, nil)),
		state:     StateIdle,
	}
	if opts != nil {
		e.defaults = opts.Defaults
		if opts.Logger != nil {
			e.log = opts.Logger
		}
	}
	if e.defaults.Name == "" {
		e.defaults.Name = "field"
	}
	var err error
	e.segments, err = BuildSegments(e.fields, widthBits)
	if err != nil {
		return nil, err
	}
	return e, nil
}

// State returns the current gesture state.
func (e *Editor) State() State { return e.state }

// Fields returns a copy of the committed field list.
func (e *Editor) Fields() []regmap.BitField {
	return append([]regmap.BitField(nil), e.fields...)
}

// Segments returns a copy of the committed segment view.
func (e *Editor) Segments() []Segment {
	return append([]Segment(nil), e.segments...)
}

// Press starts a resize (on a field segment) or a create (on a gap segment)
// gesture at the given bit. Rejected while a gesture is active.
func (e *Editor) Press(bit uint) error {
	if e.state != StateIdle {
		return ErrGestureActive
	}
	if bit >= e.widthBits {
		return fmt.Errorf("%w: bit %d in %d-bit word", ErrOutOfRange, bit, e.widthBits)
	}

	segIdx := SegmentAt(e.segments, bit)
	seg := e.segments[segIdx]
	if seg.IsGap() {
		minBit, maxBit := findGapBoundaries(e.segments, segIdx)
		e.sess = session{anchorBit: bit, currentBit: bit, minBit: minBit, maxBit: maxBit, targetField: -1}
		e.state = StateCreating
	} else {
		minBit, maxBit := findResizeBoundary(e.segments, segIdx, e.widthBits)
		e.sess = session{anchorBit: bit, currentBit: bit, minBit: minBit, maxBit: maxBit, targetField: seg.FieldIndex}
		e.state = StateResizing
	}
	e.log.Debug("gesture start", "state", e.state, "bit", bit,
		"min", e.sess.minBit, "max", e.sess.maxBit)
	return nil
}

// PressReorder starts a reorder gesture on the field under the given bit.
// Rejected while a gesture is active or when the bit lies in a gap.
func (e *Editor) PressReorder(bit uint) error {
	if e.state != StateIdle {
		return ErrGestureActive
	}
	if bit >= e.widthBits {
		return fmt.Errorf("%w: bit %d in %d-bit word", ErrOutOfRange, bit, e.widthBits)
	}
	seg := e.segments[SegmentAt(e.segments, bit)]
	if seg.IsGap() {
		return ErrNotOnField
	}
	e.sess = session{
		anchorBit:   bit,
		currentBit:  bit,
		minBit:      0,
		maxBit:      e.widthBits - 1,
		targetField: seg.FieldIndex,
	}
	e.state = StateReordering
	e.log.Debug("gesture start", "state", e.state, "bit", bit, "field", seg.FieldIndex)
	return nil
}

// Move updates the gesture's current bit, clamped into the sandbox.
func (e *Editor) Move(bit uint) error {
	if e.state == StateIdle {
		return ErrNoGesture
	}
	e.sess.currentBit = clamp(bit, e.sess.minBit, e.sess.maxBit)
	return nil
}

// Cancel discards the active session without applying any mutation.
func (e *Editor) Cancel() {
	if e.state == StateIdle {
		return
	}
	e.log.Debug("gesture cancelled", "state", e.state)
	e.state = StateIdle
	e.sess = session{}
}

// Release commits the gesture and returns the editor to idle. The committed
// mutation is computed purely from the session and the field list at gesture
// start, and is delivered through exactly one callback.
func (e *Editor) Release() error {
	switch e.state {
	case StateResizing:
		return e.commitResize()
	case StateCreating:
		return e.commitCreate()
	case StateReordering:
		return e.commitReorder()
	}
	return ErrNoGesture
}

// Selection returns the active drag selection, clamped into the sandbox.
// ok is false when no resize or create gesture is active.
func (e *Editor) Selection() (sel regmap.BitRange, ok bool) {
	if e.state != StateResizing && e.state != StateCreating {
		return regmap.BitRange{}, false
	}
	lo, hi := e.sess.anchorBit, e.sess.currentBit
	if lo > hi {
		lo, hi = hi, lo
	}
	lo = clamp(lo, e.sess.minBit, e.sess.maxBit)
	hi = clamp(hi, e.sess.minBit, e.sess.maxBit)
	return regmap.BitRange{MSB: hi, LSB: lo}, true
}

// InNewRange reports whether bit is inside the pending selection. Pure
// per-frame feedback; nothing is committed until release.
func (e *Editor) InNewRange(bit uint) bool {
	sel, ok := e.Selection()
	return ok && sel.Contains(bit)
}

// IsDiscarded reports whether bit belongs to the resized field's original
// range but falls outside the pending selection, i.e. it becomes a gap if the
// gesture commits.
func (e *Editor) IsDiscarded(bit uint) bool {
	if e.state != StateResizing {
		return false
	}
	sel, _ := e.Selection()
	return e.fields[e.sess.targetField].Range.Contains(bit) && !sel.Contains(bit)
}

func (e *Editor) commitResize() error {
	sel, _ := e.Selection()
	idx := e.sess.targetField

	next := e.Fields()
	next[idx] = next[idx].WithRange(sel)
	if err := e.install(next); err != nil {
		return err
	}
	e.state = StateIdle
	e.sess = session{}
	e.log.Debug("resize committed", "field", idx, "range", sel.String())
	if e.cb.OnUpdateFieldRange != nil {
		e.cb.OnUpdateFieldRange(idx, sel)
	}
	return nil
}

func (e *Editor) commitCreate() error {
	sel, _ := e.Selection()
	field, err := regmap.NewBitField(
		e.uniqueName(e.defaults.Name), sel, e.defaults.Access, 0, e.defaults.Description)
	if err != nil {
		return err
	}

	next := append(e.Fields(), field)
	if err := e.install(next); err != nil {
		return err
	}
	e.state = StateIdle
	e.sess = session{}
	e.log.Debug("create committed", "field", field.Name, "range", sel.String())
	if e.cb.OnCreateField != nil {
		e.cb.OnCreateField(field)
	}
	return nil
}

func (e *Editor) commitReorder() error {
	reordered := computeReorder(e.segments, e.sess.targetField, e.sess.currentBit)

	next := e.Fields()
	var updates []FieldUpdate
	for _, s := range reordered {
		if s.IsGap() {
			continue
		}
		if next[s.FieldIndex].Range != s.Range {
			updates = append(updates, FieldUpdate{FieldIndex: s.FieldIndex, NewRange: s.Range})
			next[s.FieldIndex] = next[s.FieldIndex].WithRange(s.Range)
		}
	}
	if err := e.install(next); err != nil {
		return err
	}
	e.state = StateIdle
	e.sess = session{}
	e.log.Debug("reorder committed", "moved", len(updates))
	if len(updates) > 0 && e.cb.OnBatchUpdateFields != nil {
		e.cb.OnBatchUpdateFields(updates)
	}
	return nil
}

// install replaces the committed field list and rebuilds the derived segment
// view. The previous layout is kept untouched on error.
func (e *Editor) install(fields []regmap.BitField) error {
	segments, err := BuildSegments(fields, e.widthBits)
	if err != nil {
		return err
	}
	e.fields = fields
	e.segments = segments
	return nil
}

// uniqueName suffixes the base name until it collides with no existing field.
func (e *Editor) uniqueName(base string) string {
	taken := make(map[string]bool, len(e.fields))
	for _, f := range e.fields {
		taken[f.Name] = true
	}
	if !taken[base] {
		return base
	}
	for i := 1; ; i++ {
		name := fmt.Sprintf("%s_%d", base, i)
		if !taken[name] {
			return name
		}
	}
}

func clamp(v, lo, hi uint) uint {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
