// Package delegate provides a single-holder capability slot, the lightweight
// alternative to a full role hierarchy.
//
// Some deployments need exactly one account holding a named capability, e.g.
// one whitelister. Provisioning a role registry for that is unnecessary
// governance overhead, so a Slot tracks one holder, settable only by a fixed
// owner account configured at construction. The uuid.Nil sentinel means
// nobody holds the capability yet.
//
// A Slot satisfies the same single-method authority contract as a
// role-membership check, so protected operations can swap between the two
// strategies without changing their guard code:
//
//	slot := delegate.New("whitelister", owner)
//	if err := slot.SetHolder(owner, operator); err != nil {
//	    // Handle authorization failure
//	}
//
//	// Inside a protected operation:
//	if err := slot.Authorize(caller); err != nil {
//	    return err // caller is not the whitelister
//	}
package delegate
