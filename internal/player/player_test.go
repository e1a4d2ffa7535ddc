package player

import (
	"os"
	"path/filepath"
	"testing"
)

func TestCountingReaderTracksPosition(t *testing.T) {
	src := &stubDecoder{data: stereoFrames(10, 1, 1), rate: 44100, channels: 2}
	cr := &countingReader{reader: src}

	buf := make([]byte, 12)
	if _, err := cr.Read(buf); err != nil {
		t.Fatal(err)
	}
	if cr.Pos() != 12 {
		t.Fatalf("pos = %d, want 12", cr.Pos())
	}

	cr.SetPos(4)
	if cr.Pos() != 4 {
		t.Fatalf("pos = %d after SetPos, want 4", cr.Pos())
	}
}

func TestOpenDecoderRejectsUnknownExtension(t *testing.T) {
	path := filepath.Join(t.TempDir(), "song.xyz")
	if err := os.WriteFile(path, []byte("not audio"), 0o644); err != nil {
		t.Fatal(err)
	}
	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	if _, err := openDecoder(f); err == nil {
		t.Fatal("expected error for unsupported extension")
	}
}

func TestOpenDecoderRejectsCorruptWAV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.wav")
	if err := os.WriteFile(path, []byte("RIFFgarbage"), 0o644); err != nil {
		t.Fatal(err)
	}
	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	if _, err := openDecoder(f); err == nil {
		t.Fatal("expected error for corrupt WAV data")
	}
}

func TestReadMetadataFallsBackToFilename(t *testing.T) {
	meta := ReadMetadata("/music/Morning Dew.flac")
	if meta.Title != "Morning Dew" {
		t.Fatalf("title = %q, want filename fallback", meta.Title)
	}
	if meta.Artist != "" || meta.Album != "" {
		t.Fatalf("expected empty artist/album, got %q/%q", meta.Artist, meta.Album)
	}
}
