package flow

// Speaker identifies whose turn produced a transcript entry.
type Speaker string

const (
	SpeakerUser      Speaker = "user"
	SpeakerAssistant Speaker = "assistant"
)

// Entry is one line of the conversation.
type Entry struct {
	ID      int64
	Speaker Speaker
	Text    string
}

// Transcript is the append-only conversation log. It is observational:
// the machine never reads it back for decisions except to restore a
// consistent point on back-navigation, which is what the checkpoints
// are for.
type Transcript struct {
	entries []Entry
	nextID  int64

	// checkpoints[i] is the entry count just before field i was
	// prompted; checkpoints[len(fields)] marks the completion notice.
	checkpoints map[int]int
}

func NewTranscript() *Transcript {
	return &Transcript{checkpoints: map[int]int{}}
}

func (t *Transcript) Append(speaker Speaker, text string) Entry {
	t.nextID++
	e := Entry{ID: t.nextID, Speaker: speaker, Text: text}
	t.entries = append(t.entries, e)

	return e
}

// Mark records the current length as the checkpoint for fieldIndex.
func (t *Transcript) Mark(fieldIndex int) {
	t.checkpoints[fieldIndex] = len(t.entries)
}

// TruncateTo cuts the transcript back to the checkpoint for fieldIndex.
// Entries past the checkpoint are discarded; the prompt for that field
// will be re-emitted by the prompting algorithm. No-op without a
// checkpoint.
func (t *Transcript) TruncateTo(fieldIndex int) {
	n, ok := t.checkpoints[fieldIndex]
	if !ok || n > len(t.entries) {
		return
	}

	t.entries = t.entries[:n]

	for idx, mark := range t.checkpoints {
		if mark > n {
			delete(t.checkpoints, idx)
		}
	}
}

// Reset clears all entries and checkpoints. Entry ids keep increasing
// so ids stay unique across flow instances.
func (t *Transcript) Reset() {
	t.entries = nil
	t.checkpoints = map[int]int{}
}

// Entries returns a copy of the log in append order.
func (t *Transcript) Entries() []Entry {
	out := make([]Entry, len(t.entries))
	copy(out, t.entries)

	return out
}

// Last returns the most recent entry, if any.
func (t *Transcript) Last() (Entry, bool) {
	if len(t.entries) == 0 {
		return Entry{}, false
	}

	return t.entries[len(t.entries)-1], true
}

func (t *Transcript) Len() int {
	return len(t.entries)
}
