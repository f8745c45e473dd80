package services

// Actor is the authenticated caller performing a mutation
type Actor struct {
	ID    uint64
	Name  string
	Admin bool
}
