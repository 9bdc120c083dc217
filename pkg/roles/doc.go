// Package roles provides a hierarchical role-membership registry for
// account-level authorization.
//
// Each role is identified by a fixed-width ID, conventionally derived from a
// human-readable name, and is administered by exactly one other role (possibly
// itself). Accounts that hold a role's admin role may grant and revoke that
// role; any member may renounce their own membership. The zero ID is the Root
// sentinel: it administers itself and serves as the default admin for roles
// with no explicitly configured hierarchy, so seeding Root members at
// construction bootstraps the whole tree.
//
// Mutators are idempotent: granting a role an account already holds, or
// revoking one it doesn't, is a silent no-op that emits no event. A genuine
// membership change emits exactly one Event through the configured Sink.
//
// Basic usage:
//
//	admin := roles.Named("admin")
//	editors := roles.Named("editors")
//
//	reg := roles.NewRegistry(
//	    roles.WithMember(roles.Root, rootAccount),
//	    roles.WithAdmin(editors, admin),
//	    roles.WithAdmin(admin, roles.Root),
//	)
//
//	// rootAccount administers admin, admin members administer editors.
//	if err := reg.Grant(rootAccount, admin, alice); err != nil {
//	    // Handle authorization failure
//	}
//
//	if reg.HasRole(editors, bob) {
//	    // bob is an editor
//	}
package roles
