// reader walks a byte slice one byte at a time and never fails, which simplifies its usage.
// it keeps track of the byte offset of the cursor and can rewind to an earlier mark.
package reader

const EOF byte = 0 // Format strings come from C, a NUL can never be part of them so it doubles as end of input

type Info struct {
	ByteOffset int
}

type Reader struct {
	Info     Info
	PrevInfo Info
	buf      []byte
}

func New(b []byte) *Reader {
	return &Reader{
		buf: b,
	}
}

// AtEnd reports whether every byte has been consumed.
func (r *Reader) AtEnd() bool {
	return r.Info.ByteOffset >= len(r.buf)
}

func (r *Reader) ReadByte() byte {
	r.PrevInfo = r.Info // Store info so that the byte can be unread
	if r.AtEnd() {
		return EOF
	}
	b := r.buf[r.Info.ByteOffset]
	r.Info.ByteOffset++
	return b
}

func (r *Reader) UnreadByte() {
	r.Info = r.PrevInfo // Restore info to previous state
}

// Peek returns up to n bytes without consuming them.
func (r *Reader) Peek(n int) []byte {
	end := r.Info.ByteOffset + n
	if end > len(r.buf) {
		end = len(r.buf)
	}
	return r.buf[r.Info.ByteOffset:end]
}

// Accept consumes b if it is the next byte.
func (r *Reader) Accept(b byte) bool {
	if r.AtEnd() || r.buf[r.Info.ByteOffset] != b {
		return false
	}
	r.ReadByte()
	return true
}

// AcceptString consumes s if the input continues with it.
func (r *Reader) AcceptString(s string) bool {
	p := r.Peek(len(s))
	if string(p) != s {
		return false
	}
	r.PrevInfo = r.Info
	r.Info.ByteOffset += len(s)
	return true
}

func (r *Reader) Mark() Info {
	return r.Info
}

func (r *Reader) Reset(i Info) {
	r.Info = i
	r.PrevInfo = i
}
