package interfaces

// DeletionBlockedError is returned when a row still has referencing rows that
// would be orphaned by the delete (a venue with scheduled events).
type DeletionBlockedError struct {
	Resource   string
	References map[string]int64
}

func (e *DeletionBlockedError) Error() string {
	return "deletion blocked"
}
