package analysis

// Source identifies where the image under analysis comes from. Exactly one
// variant exists per request; the sealed interface makes the choice explicit
// at the type level instead of via nullable fields.
type Source interface {
	isSource()
}

// Upload is an image provided directly by the caller.
type Upload struct {
	Data     []byte
	Filename string
}

// URL is an image or web-page address to acquire bytes from.
type URL struct {
	Address string
}

func (Upload) isSource() {}
func (URL) isSource()    {}
