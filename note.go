package kaiku

// InstrumentID is a stable handle into an instrument registry. Notes refer
// to their instrument through a handle rather than a pointer so that a
// registry can be rebuilt without leaving dangling references.
type InstrumentID int

// NoInstrument marks a note without an assigned instrument; such a note
// renders silently.
const NoInstrument InstrumentID = -1

// Note is one sounding voice: a scale index plus the engine-clock times the
// note went on and off. On > Off means the note is sustaining; Off >= On
// means it is releasing or idle. A note that has never been released
// carries a negative Off, which keeps a note triggered at time zero
// sustaining.
type Note struct {
	ID         int
	On         float64
	Off        float64
	Active     bool
	Instrument InstrumentID
}

// Sustaining reports whether the note is currently held down.
func (n Note) Sustaining() bool {
	return n.On > n.Off
}
