package model

// WriteResult is the outcome of an update or delete against a single row.
type WriteResult int

const (
	WriteOK WriteResult = iota
	WriteNotFound
	// WriteConflict means the row exists but the statement did not touch it.
	WriteConflict
	WriteInvalid
)

func (r WriteResult) String() string {
	switch r {
	case WriteOK:
		return "ok"
	case WriteNotFound:
		return "not_found"
	case WriteConflict:
		return "conflict"
	case WriteInvalid:
		return "invalid"
	default:
		return "unknown"
	}
}
