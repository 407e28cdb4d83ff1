package models

// LineAppender is satisfied by every model that is written as one line of
// a fixed-width table.
type LineAppender interface {
	AppendLine(buf []byte) ([]byte, error)
}
