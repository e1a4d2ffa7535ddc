package player

import (
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-audio/wav"
	"github.com/hajimehoshi/go-mp3"
	"github.com/jfreymuth/oggvorbis"
	"github.com/mewkiz/flac"
)

// audioDecoder is the stream interface the playback pipeline is built on:
// seekable s16le PCM plus the stream's fixed parameters.
type audioDecoder interface {
	io.ReadSeeker
	Length() int64
	SampleRate() int
	ChannelCount() int
}

// openDecoder picks a decoder for f by file extension.
func openDecoder(f *os.File) (audioDecoder, error) {
	switch ext := strings.ToLower(filepath.Ext(f.Name())); ext {
	case ".mp3":
		return newMP3Decoder(f)
	case ".wav":
		return newWAVDecoder(f)
	case ".flac":
		return newFLACDecoder(f)
	case ".ogg":
		return newOGGDecoder(f)
	default:
		return nil, fmt.Errorf("unsupported format: %s", ext)
	}
}

func clampS16(v int) int16 {
	if v > 32767 {
		return 32767
	}
	if v < -32768 {
		return -32768
	}
	return int16(v)
}

// --- MP3 ---

// go-mp3 already exposes a seekable s16le stereo stream, so it plugs in
// directly.
type mp3Decoder struct {
	dec *mp3.Decoder
}

func newMP3Decoder(f *os.File) (*mp3Decoder, error) {
	dec, err := mp3.NewDecoder(f)
	if err != nil {
		return nil, fmt.Errorf("decoding MP3: %w", err)
	}
	return &mp3Decoder{dec: dec}, nil
}

func (d *mp3Decoder) Read(p []byte) (int, error) { return d.dec.Read(p) }
func (d *mp3Decoder) Seek(offset int64, whence int) (int64, error) {
	return d.dec.Seek(offset, whence)
}
func (d *mp3Decoder) Length() int64     { return d.dec.Length() }
func (d *mp3Decoder) SampleRate() int   { return d.dec.SampleRate() }
func (d *mp3Decoder) ChannelCount() int { return 2 }

// --- chunked sources ---

// chunkSource produces s16le PCM in decoder-native chunks and repositions
// by absolute sample frame. pcmStream adapts it to the byte interface the
// player reads.
type chunkSource interface {
	nextChunk() ([]byte, error)
	seekFrame(frame int64) error
}

type pcmStream struct {
	src        chunkSource
	sampleRate int
	channels   int
	length     int64 // total s16le output bytes
	pos        int64
	pending    []byte
}

func (s *pcmStream) Read(p []byte) (int, error) {
	for len(s.pending) == 0 {
		chunk, err := s.src.nextChunk()
		if err != nil {
			return 0, err
		}
		s.pending = chunk
	}
	n := copy(p, s.pending)
	s.pending = s.pending[n:]
	s.pos += int64(n)
	return n, nil
}

func (s *pcmStream) Seek(offset int64, whence int) (int64, error) {
	var newPos int64
	switch whence {
	case io.SeekStart:
		newPos = offset
	case io.SeekCurrent:
		newPos = s.pos + offset
	case io.SeekEnd:
		newPos = s.length + offset
	default:
		return s.pos, fmt.Errorf("invalid seek whence: %d", whence)
	}
	if newPos < 0 {
		newPos = 0
	}
	if newPos > s.length {
		newPos = s.length
	}
	frameBytes := int64(s.channels) * 2
	newPos -= newPos % frameBytes

	if err := s.src.seekFrame(newPos / frameBytes); err != nil {
		return s.pos, err
	}
	s.pending = nil
	s.pos = newPos
	return newPos, nil
}

func (s *pcmStream) Length() int64     { return s.length }
func (s *pcmStream) SampleRate() int   { return s.sampleRate }
func (s *pcmStream) ChannelCount() int { return s.channels }

// --- WAV ---

type wavSource struct {
	file         *os.File
	pcmStart     int64
	srcBits      int
	channels     int
	srcFrameSize int64
	totalFrames  int64
	frame        int64 // next source frame to decode
}

const wavFramesPerChunk = 2048

func newWAVDecoder(f *os.File) (*pcmStream, error) {
	dec := wav.NewDecoder(f)
	if !dec.IsValidFile() {
		return nil, fmt.Errorf("invalid WAV file")
	}
	if err := dec.FwdToPCM(); err != nil {
		return nil, fmt.Errorf("reading WAV PCM data: %w", err)
	}

	channels := int(dec.NumChans)
	bits := int(dec.BitDepth)
	if channels < 1 || bits%8 != 0 || bits < 8 || bits > 32 {
		return nil, fmt.Errorf("unsupported WAV layout: %d ch, %d bit", channels, bits)
	}
	srcFrameSize := int64(channels) * int64(bits) / 8
	totalFrames := dec.PCMLen() / srcFrameSize

	pcmStart, err := f.Seek(0, io.SeekCurrent)
	if err != nil {
		return nil, fmt.Errorf("locating WAV PCM start: %w", err)
	}

	src := &wavSource{
		file:         f,
		pcmStart:     pcmStart,
		srcBits:      bits,
		channels:     channels,
		srcFrameSize: srcFrameSize,
		totalFrames:  totalFrames,
	}
	return &pcmStream{
		src:        src,
		sampleRate: int(dec.SampleRate),
		channels:   channels,
		length:     totalFrames * int64(channels) * 2,
	}, nil
}

func (w *wavSource) nextChunk() ([]byte, error) {
	remain := w.totalFrames - w.frame
	if remain <= 0 {
		return nil, io.EOF
	}
	frames := int64(wavFramesPerChunk)
	if frames > remain {
		frames = remain
	}

	raw := make([]byte, frames*w.srcFrameSize)
	n, err := io.ReadFull(w.file, raw)
	whole := int64(n) / w.srcFrameSize
	if whole == 0 {
		if err == nil || err == io.ErrUnexpectedEOF {
			err = io.EOF
		}
		return nil, err
	}
	w.frame += whole

	srcBytes := w.srcBits / 8
	samples := int(whole) * w.channels
	out := make([]byte, samples*2)
	for i := range samples {
		off := i * srcBytes
		var v int
		switch w.srcBits {
		case 8:
			// 8-bit WAV is unsigned
			v = (int(raw[off]) - 128) << 8
		case 16:
			v = int(int16(binary.LittleEndian.Uint16(raw[off:])))
		case 24:
			s := int32(raw[off]) | int32(raw[off+1])<<8 | int32(raw[off+2])<<16
			if s&0x800000 != 0 {
				s |= ^int32(0xFFFFFF)
			}
			v = int(s >> 8)
		case 32:
			v = int(int32(binary.LittleEndian.Uint32(raw[off:])) >> 16)
		}
		binary.LittleEndian.PutUint16(out[i*2:], uint16(clampS16(v)))
	}
	return out, nil
}

func (w *wavSource) seekFrame(frame int64) error {
	if _, err := w.file.Seek(w.pcmStart+frame*w.srcFrameSize, io.SeekStart); err != nil {
		return err
	}
	w.frame = frame
	return nil
}

// --- FLAC ---

type flacSource struct {
	stream   *flac.Stream
	channels int
	bits     int
}

func newFLACDecoder(f *os.File) (*pcmStream, error) {
	stream, err := flac.NewSeek(f)
	if err != nil {
		return nil, fmt.Errorf("decoding FLAC: %w", err)
	}

	info := stream.Info
	channels := int(info.NChannels)
	src := &flacSource{
		stream:   stream,
		channels: channels,
		bits:     int(info.BitsPerSample),
	}
	return &pcmStream{
		src:        src,
		sampleRate: int(info.SampleRate),
		channels:   channels,
		length:     int64(info.NSamples) * int64(channels) * 2,
	}, nil
}

func (d *flacSource) nextChunk() ([]byte, error) {
	frame, err := d.stream.ParseNext()
	if err != nil {
		return nil, err
	}

	n := int(frame.Subframes[0].NSamples)
	out := make([]byte, n*d.channels*2)
	for i := range n {
		for ch := range d.channels {
			v := int(frame.Subframes[ch].Samples[i])
			switch {
			case d.bits > 16:
				v >>= d.bits - 16
			case d.bits < 16:
				v <<= 16 - d.bits
			}
			off := (i*d.channels + ch) * 2
			binary.LittleEndian.PutUint16(out[off:], uint16(clampS16(v)))
		}
	}
	return out, nil
}

func (d *flacSource) seekFrame(frame int64) error {
	_, err := d.stream.Seek(uint64(frame))
	return err
}

// --- OGG Vorbis ---

type oggSource struct {
	reader   *oggvorbis.Reader
	channels int
	buf      []float32
}

const oggSamplesPerChunk = 4096

func newOGGDecoder(f *os.File) (*pcmStream, error) {
	reader, err := oggvorbis.NewReader(f)
	if err != nil {
		return nil, fmt.Errorf("decoding OGG: %w", err)
	}

	channels := reader.Channels()
	src := &oggSource{
		reader:   reader,
		channels: channels,
		buf:      make([]float32, oggSamplesPerChunk),
	}
	return &pcmStream{
		src:        src,
		sampleRate: reader.SampleRate(),
		channels:   channels,
		length:     reader.Length() * int64(channels) * 2,
	}, nil
}

func (d *oggSource) nextChunk() ([]byte, error) {
	n, err := d.reader.Read(d.buf)
	if n == 0 {
		if err == nil {
			err = io.EOF
		}
		return nil, err
	}

	out := make([]byte, n*2)
	for i, s := range d.buf[:n] {
		if s > 1.0 {
			s = 1.0
		} else if s < -1.0 {
			s = -1.0
		}
		binary.LittleEndian.PutUint16(out[i*2:], uint16(int16(s*32767)))
	}
	return out, nil
}

func (d *oggSource) seekFrame(frame int64) error {
	return d.reader.SetPosition(frame)
}
