// Package initguard tracks the one-time setup phase of a composed component
// and prevents re-entry into setup after it has completed.
//
// A component assembled from several capability layers initializes each layer
// exactly once through a shared Guard: the outermost setup routine calls Begin,
// runs each layer's setup through Once, and seals the instance with Complete.
// Begin is idempotent while setup is in progress, so nested setup chains can
// safely re-enter the entry point without double-running ancestor layers.
//
// Phase transitions are monotonic and irreversible:
//
//	Uninitialized -> Initializing -> Initialized
//
// Basic usage:
//
//	g := initguard.New()
//	if err := g.Begin(); err != nil {
//	    return err
//	}
//	if err := g.Once("storage", setupStorage); err != nil {
//	    return err
//	}
//	if err := g.Once("registry", setupRegistry); err != nil {
//	    return err
//	}
//	return g.Complete()
//
// After Complete, any further Begin fails with ErrAlreadyInitialized and any
// direct Once call fails with ErrNotInitializing, so internal setup steps are
// not reachable by ordinary callers once the component is live.
package initguard
