package transfer

// Status is the lifecycle state of a transfer record.
type Status string

const (
	StatusPending      Status = "PENDING"
	StatusApproving    Status = "APPROVING"
	StatusBurning      Status = "BURNING"
	StatusAttesting    Status = "ATTESTING"
	StatusMinting      Status = "MINTING"
	StatusTransferring Status = "TRANSFERRING"
	StatusCompleted    Status = "COMPLETED"
	StatusFailed       Status = "FAILED"
)

var (
	crossChainPath = []Status{StatusPending, StatusApproving, StatusBurning, StatusAttesting, StatusMinting, StatusCompleted}
	sameChainPath  = []Status{StatusPending, StatusTransferring, StatusCompleted}
)

// Terminal reports whether no further mutation is allowed.
func (s Status) Terminal() bool {
	return s == StatusCompleted || s == StatusFailed
}

// Valid reports whether s is a known status.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusApproving, StatusBurning, StatusAttesting, StatusMinting,
		StatusTransferring, StatusCompleted, StatusFailed:
		return true
	}
	return false
}

// CanTransition reports whether a record of the given kind may move from one
// status to another. Steps may be skipped but never revisited; FAILED is
// reachable from any non-terminal status.
func CanTransition(kind Kind, from, to Status) bool {
	if from.Terminal() {
		return false
	}
	if to == StatusFailed {
		return true
	}

	path := crossChainPath
	if kind == KindSameChain {
		path = sameChainPath
	}

	fi, ti := indexOf(path, from), indexOf(path, to)
	if fi < 0 || ti < 0 {
		return false
	}
	return ti >= fi
}

func indexOf(path []Status, s Status) int {
	for i, p := range path {
		if p == s {
			return i
		}
	}
	return -1
}
