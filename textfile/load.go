package textfile

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/guiguan/caster"
	"github.com/npillmayer/textbase"
)

// Some constants for fragment size defaults
const (
	twoKb     = 2048
	sixKb     = 6144
	tenKb     = 10240
	hundredKb = 102400
	oneMb     = 1048576
)

// LineKind is the kind of segments created for lines of a file.
const LineKind = "line"

// Progress is broadcast to subscribers whenever a fragment has been loaded.
type Progress struct {
	Loaded int64 // bytes loaded so far
	Size   int64 // size of the file in bytes
	Lines  int   // lines completed so far
}

// File is a text file being loaded.
type File struct {
	path     string
	info     os.FileInfo
	file     *os.File
	fragSize int64
	interner *textbase.Interner
	cast     *caster.Caster // broadcaster for progress messages
	done     chan struct{}
	series   *textbase.Series
	err      error // set before done is closed
}

// Load opens a file, which must be a text file, and starts loading it as a
// series of lines. Clients may indicate a recommended fragment length. It may
// be 0, letting Load use a sensible default.
//
// Line spans are created by interner in. If in is nil, a new interner with
// default configuration is used. Clients must not use in until loading has
// completed.
//
// Opening of the file is done synchronously, loading its content is not.
func Load(name string, fragSize int64, in *textbase.Interner) (*File, error) {
	tf, err := openFile(name)
	if err != nil {
		return nil, err
	}
	if in == nil {
		in = textbase.NewInterner(textbase.DefaultConfig())
	}
	tf.interner = in
	size := tf.info.Size()
	if fragSize <= 0 || fragSize > tenKb {
		switch {
		case size < 1024:
			fragSize = 64
		case size < tenKb:
			fragSize = 256
		case size < hundredKb:
			fragSize = 512
		case size < oneMb:
			fragSize = twoKb
		default:
			fragSize = sixKb
		}
	}
	tf.fragSize = fragSize
	tracer().Debugf("loading %q (%d bytes) in fragments of %d", name, size, fragSize)
	go tf.loadAllFragments()
	return tf, nil
}

// openFile opens an OS file and collects some useful information on it,
// checking for error conditions.
func openFile(name string) (*File, error) {
	fi, err := os.Stat(name)
	if err != nil {
		return nil, err
	} else if !fi.Mode().IsRegular() {
		return nil, fmt.Errorf("%w: %q is not a regular file", textbase.ErrInvalidArgument, name)
	}
	file, err := os.Open(name) // just open for read access
	if err != nil {
		return nil, err
	}
	return &File{
		path: name,
		info: fi,
		file: file,
		cast: caster.New(nil),
		done: make(chan struct{}),
	}, nil
}

// Path returns the name of the file.
func (tf *File) Path() string {
	return tf.path
}

// Subscribe returns a channel receiving Progress messages. The channel is
// closed when loading is complete. If loading has already completed, ok is
// false.
func (tf *File) Subscribe(capacity uint) (ch <-chan interface{}, ok bool) {
	return tf.cast.Sub(nil, capacity)
}

// Wait blocks until the file is completely loaded or ctx is done.
func (tf *File) Wait(ctx context.Context) (*textbase.Series, error) {
	select {
	case <-tf.done:
		return tf.series, tf.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// --- File loading goroutine ------------------------------------------------

func (tf *File) loadAllFragments() {
	defer close(tf.done)
	defer tf.cast.Close()
	defer tf.file.Close()
	var lines []*textbase.Segment
	var pending []byte
	size := tf.info.Size()
	buf := make([]byte, tf.fragSize)
	for pos := int64(0); pos < size; {
		cnt, err := tf.file.ReadAt(buf, pos)
		if err != nil && err != io.EOF {
			tf.err = fmt.Errorf("error loading text fragment at %d: %w", pos, err)
			tracer().Errorf("%v", tf.err)
			return
		}
		if cnt == 0 {
			tf.err = fmt.Errorf("file %q shrunk while loading", tf.path)
			return
		}
		pending = append(pending, buf[:cnt]...)
		for {
			i := bytes.IndexByte(pending, '\n')
			if i < 0 {
				break
			}
			if tf.err = tf.appendLine(&lines, pending[:i]); tf.err != nil {
				return
			}
			pending = pending[i+1:]
		}
		pos += int64(cnt)
		tf.cast.Pub(Progress{Loaded: pos, Size: size, Lines: len(lines)})
	}
	if len(pending) > 0 {
		if tf.err = tf.appendLine(&lines, pending); tf.err != nil {
			return
		}
	}
	tf.series = textbase.NewSeries(lines...)
	tracer().Infof("loaded %d lines from %q", len(lines), tf.path)
}

func (tf *File) appendLine(lines *[]*textbase.Segment, line []byte) error {
	line = bytes.TrimSuffix(line, []byte{'\r'})
	seg := textbase.NewSegment(LineKind, nil)
	if len(line) > 0 {
		s, err := tf.interner.Span(string(line), nil)
		if err != nil {
			return err
		}
		if err = seg.Chain().Append(s); err != nil {
			return err
		}
	}
	*lines = append(*lines, seg)
	return nil
}
