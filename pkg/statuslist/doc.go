// Package statuslist maintains a per-account boolean status flag used as a
// guard precondition for protected operations.
//
// A List carries one semantic status for its accounts and comes in two
// flavors: a Denylist blocks the accounts it contains, an Allowlist blocks
// the accounts it does not contain. Flags default to false for accounts never
// written, and state is created implicitly on first write.
//
// Mutators are gated by an Authority — any single-method backend works, e.g.
// a role-membership check or a delegated single-holder slot — and are
// idempotent: setting a flag to the value it already has is a silent no-op
// with no event. A deny-flavored list may additionally enable self-service,
// letting any account mark itself without authority.
//
// Protected operations consult Check before mutating anything:
//
//	denied := statuslist.New("blocklist", statuslist.Denylist, authority)
//
//	func (s *Service) Withdraw(ctx context.Context, account uuid.UUID) error {
//	    if err := denied.Check(account); err != nil {
//	        return err // no side effects past this point
//	    }
//	    // ... proceed
//	}
package statuslist
