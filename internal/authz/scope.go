package authz

import (
	"github.com/google/uuid"

	"github.com/Junaid083/SprintSync/internal/token"
)

// Scope is the visibility boundary derived from verified claims. Every
// repository operation takes one; it is never optional and caller-supplied
// filters can only narrow within it.
type Scope struct {
	AccountID uuid.UUID
	Admin     bool
}

func FromClaims(c token.Claims) Scope {
	return Scope{AccountID: c.AccountID, Admin: c.IsAdmin}
}

// Owner returns the owner predicate for read-one, write, status-patch and
// delete: nil means unconstrained (admin), otherwise the caller's own id.
// A non-owner hitting the constrained predicate observes the same outcome
// as "task does not exist".
func (s Scope) Owner() *uuid.UUID {
	if s.Admin {
		return nil
	}
	id := s.AccountID
	return &id
}

// ListOwner resolves the owner predicate for a list. A non-admin is always
// pinned to their own tasks no matter what filter they supply; an admin may
// narrow to one account, and nil requested means "all owners".
func (s Scope) ListOwner(requested *uuid.UUID) *uuid.UUID {
	if !s.Admin {
		id := s.AccountID
		return &id
	}
	return requested
}

// AssignOwner resolves the owner of a newly created task. Only an admin may
// assign to another account; a non-admin-supplied owner is silently ignored.
func (s Scope) AssignOwner(requested *uuid.UUID) uuid.UUID {
	if s.Admin && requested != nil {
		return *requested
	}
	return s.AccountID
}

// Reassignment resolves an owner change on update. Nil means the task keeps
// its current owner; only an admin-supplied target is honored.
func (s Scope) Reassignment(requested *uuid.UUID) *uuid.UUID {
	if s.Admin {
		return requested
	}
	return nil
}
