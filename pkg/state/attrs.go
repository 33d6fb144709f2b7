package state

// Alignment is a paragraph's horizontal text alignment.
type Alignment int

const (
	AlignLeft Alignment = iota
	AlignRight
	AlignCenter
	AlignJustified
	AlignDistributed
	AlignThaiDistributed
)

func (a Alignment) String() string {
	switch a {
	case AlignLeft:
		return "left"
	case AlignRight:
		return "right"
	case AlignCenter:
		return "center"
	case AlignJustified:
		return "justified"
	case AlignDistributed:
		return "distributed"
	case AlignThaiDistributed:
		return "thai-distributed"
	default:
		return "unknown"
	}
}
