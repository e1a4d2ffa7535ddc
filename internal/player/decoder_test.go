package player

import (
	"bytes"
	"encoding/binary"
	"io"
	"os"
	"path/filepath"
	"testing"
)

// writeWAV writes a canonical 16-bit PCM WAV file and returns the path.
func writeWAV(t *testing.T, sampleRate, channels int, pcm []byte) string {
	t.Helper()

	var buf bytes.Buffer
	byteRate := sampleRate * channels * 2
	blockAlign := channels * 2

	buf.WriteString("RIFF")
	binary.Write(&buf, binary.LittleEndian, uint32(36+len(pcm)))
	buf.WriteString("WAVE")
	buf.WriteString("fmt ")
	binary.Write(&buf, binary.LittleEndian, uint32(16))
	binary.Write(&buf, binary.LittleEndian, uint16(1)) // PCM
	binary.Write(&buf, binary.LittleEndian, uint16(channels))
	binary.Write(&buf, binary.LittleEndian, uint32(sampleRate))
	binary.Write(&buf, binary.LittleEndian, uint32(byteRate))
	binary.Write(&buf, binary.LittleEndian, uint16(blockAlign))
	binary.Write(&buf, binary.LittleEndian, uint16(16)) // bit depth
	buf.WriteString("data")
	binary.Write(&buf, binary.LittleEndian, uint32(len(pcm)))
	buf.Write(pcm)

	path := filepath.Join(t.TempDir(), "tone.wav")
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestWAVDecoderRoundTrip(t *testing.T) {
	const frames = 500
	pcm := make([]byte, frames*4)
	for i := range frames {
		binary.LittleEndian.PutUint16(pcm[i*4:], uint16(int16(i-250)))
		binary.LittleEndian.PutUint16(pcm[i*4+2:], uint16(int16(250-i)))
	}

	f, err := os.Open(writeWAV(t, 44100, 2, pcm))
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	dec, err := openDecoder(f)
	if err != nil {
		t.Fatal(err)
	}

	if dec.SampleRate() != 44100 || dec.ChannelCount() != 2 {
		t.Fatalf("rate=%d ch=%d, want 44100/2", dec.SampleRate(), dec.ChannelCount())
	}
	if dec.Length() != int64(len(pcm)) {
		t.Fatalf("length = %d, want %d", dec.Length(), len(pcm))
	}

	got, err := io.ReadAll(dec)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(got, pcm) {
		t.Fatal("decoded PCM differs from source")
	}
}

func TestWAVDecoderSeeksByFrame(t *testing.T) {
	const frames = 100
	pcm := make([]byte, frames*4)
	for i := range frames {
		binary.LittleEndian.PutUint16(pcm[i*4:], uint16(int16(i)))
		binary.LittleEndian.PutUint16(pcm[i*4+2:], uint16(int16(i)))
	}

	f, err := os.Open(writeWAV(t, 22050, 2, pcm))
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	dec, err := openDecoder(f)
	if err != nil {
		t.Fatal(err)
	}

	// Consume a little, then land on frame 40 (byte 160) with an
	// unaligned offset that must be clamped down.
	if _, err := io.ReadFull(dec, make([]byte, 32)); err != nil {
		t.Fatal(err)
	}
	pos, err := dec.Seek(162, io.SeekStart)
	if err != nil {
		t.Fatal(err)
	}
	if pos != 160 {
		t.Fatalf("seek pos = %d, want frame-aligned 160", pos)
	}

	rest, err := io.ReadAll(dec)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(rest, pcm[160:]) {
		t.Fatal("post-seek PCM differs from source")
	}
}

func TestPCMStreamClampsSeekRange(t *testing.T) {
	pcm := make([]byte, 40)
	f, err := os.Open(writeWAV(t, 8000, 2, pcm))
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	dec, err := openDecoder(f)
	if err != nil {
		t.Fatal(err)
	}

	if pos, _ := dec.Seek(-10, io.SeekStart); pos != 0 {
		t.Fatalf("negative seek pos = %d, want 0", pos)
	}
	if pos, _ := dec.Seek(10, io.SeekEnd); pos != 40 {
		t.Fatalf("past-end seek pos = %d, want 40", pos)
	}
}
