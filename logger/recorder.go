package logger

import "sync"

// Entry is one captured log call.
type Entry struct {
	Level         string
	Msg           string
	KeysAndValues []interface{}
}

// Recorder is a Logger that keeps every entry in memory. Tests use it to
// assert on the progress logging components are contractually required to
// emit.
type Recorder struct {
	mu      sync.Mutex
	entries []Entry
}

func NewRecorder() *Recorder { return &Recorder{} }

func (r *Recorder) record(level, msg string, kv []interface{}) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, Entry{Level: level, Msg: msg, KeysAndValues: kv})
}

func (r *Recorder) Debug(msg string, kv ...interface{}) { r.record("debug", msg, kv) }
func (r *Recorder) Info(msg string, kv ...interface{})  { r.record("info", msg, kv) }
func (r *Recorder) Warn(msg string, kv ...interface{})  { r.record("warn", msg, kv) }
func (r *Recorder) Error(msg string, kv ...interface{}) { r.record("error", msg, kv) }
func (r *Recorder) With(...interface{}) Logger          { return r }

// Entries returns a copy of everything recorded so far.
func (r *Recorder) Entries() []Entry {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Entry, len(r.entries))
	copy(out, r.entries)
	return out
}

// Messages returns the recorded messages at the given level, in order.
func (r *Recorder) Messages(level string) []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	var msgs []string
	for _, e := range r.entries {
		if e.Level == level {
			msgs = append(msgs, e.Msg)
		}
	}
	return msgs
}
