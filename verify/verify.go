package verify

import "fmt"

// Mismatch is the first place a decoded sequence parts from the original
type Mismatch struct {
	Index   int
	Want    int64
	Got     int64
	WantLen int
	GotLen  int
}

func (m *Mismatch) Error() string {
	if m.Index >= m.WantLen || m.Index >= m.GotLen {
		return fmt.Sprintf("length mismatch: want %d symbols, got %d", m.WantLen, m.GotLen)
	}
	return fmt.Sprintf("symbol %d: want %d, got %d", m.Index, m.Want, m.Got)
}

// Sequences returns nil when got is exactly want, else a *Mismatch
func Sequences(want, got []int64) error {
	n := min(len(want), len(got))
	for i := 0; i < n; i++ {
		if want[i] != got[i] {
			return &Mismatch{Index: i, Want: want[i], Got: got[i], WantLen: len(want), GotLen: len(got)}
		}
	}
	if len(want) != len(got) {
		return &Mismatch{Index: n, WantLen: len(want), GotLen: len(got)}
	}
	return nil
}
