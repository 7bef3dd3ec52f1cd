package http

// Request actions as seen by the permission policies. Retrieval policy is
// wired separately from mutation policy so the two can diverge without
// touching handler logic.
type action int

const (
	actionList action = iota
	actionRetrieve
	actionCreate
	actionUpdate
	actionDelete
)

// policy decides whether a requester may perform an action on a resource.
// ownerID is the resource author's ID, or 0 when the resource has no owner.
type policy interface {
	allows(act action, requesterID, ownerID uint) bool
}

// readOnlyPolicy permits retrieval for anyone and denies every mutation,
// regardless of identity.
type readOnlyPolicy struct{}

func (readOnlyPolicy) allows(act action, _, _ uint) bool {
	return act == actionList || act == actionRetrieve
}

// authorOrReadOnlyPolicy permits retrieval for anyone, creation for any
// authenticated requester, and update/delete only for the resource author.
type authorOrReadOnlyPolicy struct{}

func (authorOrReadOnlyPolicy) allows(act action, requesterID, ownerID uint) bool {
	switch act {
	case actionList, actionRetrieve:
		return true
	case actionCreate:
		return requesterID != 0
	default:
		return requesterID != 0 && requesterID == ownerID
	}
}

var (
	readOnly         policy = readOnlyPolicy{}
	authorOrReadOnly policy = authorOrReadOnlyPolicy{}
)
