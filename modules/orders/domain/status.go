package domain

// Status represents the order payment/completion status.
// The wire spellings are kept as the rest of the system knows them.
type Status string

const (
	StatusUnpaid Status = "UNPAIED"
	StatusPaid   Status = "PAIED"
	StatusDone   Status = "DONE"
)

func (s Status) String() string { return string(s) }

func (s Status) IsValid() bool {
	switch s {
	case StatusUnpaid, StatusPaid, StatusDone:
		return true
	default:
		return false
	}
}
