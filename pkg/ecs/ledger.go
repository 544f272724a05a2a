package ecs

import "slices"

// KeyList is an ordered list of component names. Handed to an asynchronous
// enumeration with WithKeyList it becomes the batch's ledger of outstanding
// names and shrinks as components finish.
type KeyList []string

// Ledger selects how an asynchronous batch tracks outstanding components.
type Ledger uint8

const (
	// LedgerStable tracks every dispatched component by a token fixed at
	// dispatch time. Completion order does not matter and a component that
	// finishes twice is only counted once.
	LedgerStable Ledger = iota
	// LedgerPositional removes the entry at the component's dispatch-time
	// index from the shared key list, like the classic JavaScript helper. An
	// index past the end of the shrunken list removes nothing. When
	// completions arrive out of order the wrong name is removed, and entries
	// can remain that no completion will ever remove; such a batch never
	// concludes. Dispatch walks the shared list while it shrinks, so a
	// component that finishes synchronously makes dispatch skip the entry
	// that slides into its place.
	LedgerPositional
)

func (l Ledger) String() string {
	switch l {
	case LedgerStable:
		return "stable"
	case LedgerPositional:
		return "positional"
	default:
		return "unknown"
	}
}

// ledger records completions. Implementations are not synchronised; the
// owning batch serialises calls.
type ledger interface {
	// complete records that the component dispatched with token finished.
	// It reports whether nothing is left outstanding and whether the
	// completion was counted at all.
	complete(token int) (drained, counted bool)
}

func newLedger(mode Ledger, list *KeyList) ledger {
	if mode == LedgerPositional {
		return &positionalLedger{list: list}
	}
	outstanding := make([]bool, len(*list))
	for i := range outstanding {
		outstanding[i] = true
	}
	return &stableLedger{list: list, outstanding: outstanding, remaining: len(outstanding)}
}

type stableLedger struct {
	list        *KeyList
	outstanding []bool
	remaining   int
}

func (l *stableLedger) complete(token int) (bool, bool) {
	if token < 0 || token >= len(l.outstanding) || !l.outstanding[token] {
		return false, false
	}
	l.outstanding[token] = false
	l.remaining--

	// The shared list holds exactly the outstanding names in dispatch order,
	// so the finished name sits after every outstanding token before it.
	pos := 0
	for _, pending := range l.outstanding[:token] {
		if pending {
			pos++
		}
	}
	if pos < len(*l.list) {
		*l.list = slices.Delete(*l.list, pos, pos+1)
	}
	return l.remaining == 0, true
}

type positionalLedger struct {
	list *KeyList
}

func (l *positionalLedger) complete(index int) (bool, bool) {
	if index >= 0 && index < len(*l.list) {
		*l.list = slices.Delete(*l.list, index, index+1)
	}
	return len(*l.list) == 0, true
}
