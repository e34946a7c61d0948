package buffer

// DefaultGap is the spare capacity kept after a buffer is created or grown.
const DefaultGap = 128

// Option is a functional option for configuring a Buffer.
type Option func(*Buffer)

// WithGap sets the spare capacity reserved for insertions.
func WithGap(n int) Option {
	return func(b *Buffer) {
		if n > 0 {
			b.minGap = n
		}
	}
}
