package service

// Participant is one connected side of a match: a blocking line reader and
// writer owned by the session once paired. A failed read or write means the
// participant is gone.
type Participant interface {
	ID() string
	SendLine(line string) error
	ReadLine() (string, error)
	Close() error
}
