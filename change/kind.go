package change

// Operation is the effect of a non-composite change.
type Operation int

const (
	Insertion Operation = iota
	Removal
)

func (o Operation) String() string {
	switch o {
	case Insertion:
		return "insertion"
	case Removal:
		return "removal"
	default:
		return "unknown"
	}
}

// Kind tags the variant held by a change.
type Kind int

const (
	KindRemove Kind = iota
	KindInsert
	KindComposite
)

func (k Kind) String() string {
	switch k {
	case KindRemove:
		return "remove"
	case KindInsert:
		return "insert"
	case KindComposite:
		return "composite"
	default:
		return "unknown"
	}
}

func (k Kind) operation() (Operation, bool) {
	switch k {
	case KindRemove:
		return Removal, true
	case KindInsert:
		return Insertion, true
	}
	return 0, false
}
