package domain

// Identity is the authenticated caller extracted from a verified Firebase ID
// token. Role carries the raw role claim currently attached to the session
// credential; it is empty when no elevated role has been granted.
type Identity struct {
	UID   string
	Email string
	Role  string
}

// Authenticated reports whether the request carried a verified identity.
func (i Identity) Authenticated() bool {
	return i.UID != ""
}
