package audio

import "testing"

func TestMidiStreamSilenceWhenStopped(t *testing.T) {
	s := &midiStream{}
	s.Stop()

	buf := make([]byte, 64)
	for i := range buf {
		buf[i] = 0xFF
	}

	n, err := s.Read(buf)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if n != len(buf) {
		t.Fatalf("n = %d, want %d", n, len(buf))
	}
	for i, b := range buf {
		if b != 0 {
			t.Fatalf("buf[%d] = %d, want silence", i, b)
		}
	}
}

func TestMidiStreamNilSequencerIsSilent(t *testing.T) {
	s := &midiStream{}
	buf := make([]byte, 16)
	n, err := s.Read(buf)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if n != 16 {
		t.Fatalf("n = %d, want 16", n)
	}
}

func TestClamp(t *testing.T) {
	cases := []struct {
		in   float32
		want float32
	}{
		{-2, -1},
		{-1, -1},
		{0, 0},
		{0.5, 0.5},
		{1, 1},
		{3, 1},
	}
	for _, c := range cases {
		if got := clamp(c.in, -1, 1); got != c.want {
			t.Errorf("clamp(%v) = %v, want %v", c.in, got, c.want)
		}
	}
}
