package textmark

// Mark converts a message to the bit sequence that is embedded into an image
// and back.
type Mark interface {
	Encode(src string) (mark []bool, err error)
	Decode(mark []bool) (src string, err error)
}
