package initguard

import "sync"

// Phase represents the setup phase of a guarded component instance.
type Phase uint8

const (
	// PhaseUninitialized is the phase of a freshly constructed instance.
	PhaseUninitialized Phase = iota
	// PhaseInitializing marks an active setup sequence.
	PhaseInitializing
	// PhaseInitialized marks a sealed instance; setup can never re-run.
	PhaseInitialized
)

func (p Phase) String() string {
	switch p {
	case PhaseUninitialized:
		return "uninitialized"
	case PhaseInitializing:
		return "initializing"
	case PhaseInitialized:
		return "initialized"
	default:
		return "unknown"
	}
}

// Guard tracks the setup phase of one component instance and which of its
// layers have already run their one-time setup. The zero value is not usable;
// create instances with New. All methods are safe for concurrent use.
type Guard struct {
	mu     sync.Mutex
	phase  Phase
	layers map[string]bool
}

// New creates a Guard in the Uninitialized phase with no layers run.
func New() *Guard {
	return &Guard{
		layers: make(map[string]bool),
	}
}

// Phase returns the current setup phase.
func (g *Guard) Phase() Phase {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.phase
}

// Initialized reports whether setup has completed.
func (g *Guard) Initialized() bool {
	return g.Phase() == PhaseInitialized
}

// LayerDone reports whether the named layer's setup step has run.
func (g *Guard) LayerDone(layer string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.layers[layer]
}

// Begin starts the setup sequence. It is a no-op when setup is already in
// progress, which lets nested setup chains share a single entry point, and
// fails with ErrAlreadyInitialized once the instance is sealed.
func (g *Guard) Begin() error {
	g.mu.Lock()
	defer g.mu.Unlock()

	switch g.phase {
	case PhaseInitialized:
		return ErrAlreadyInitialized
	case PhaseInitializing:
		return nil
	default:
		g.phase = PhaseInitializing
		return nil
	}
}

// Once runs the named layer's one-time setup step. It fails with
// ErrNotInitializing outside an active setup sequence and with LayerDoneError
// if the layer has already run. A setup error leaves the layer unmarked, so a
// failed sequence commits nothing for that layer.
func (g *Guard) Once(layer string, setup func() error) error {
	g.mu.Lock()
	if g.phase != PhaseInitializing {
		g.mu.Unlock()
		return ErrNotInitializing
	}
	if g.layers[layer] {
		g.mu.Unlock()
		return &LayerDoneError{Layer: layer}
	}
	// Mark before running so a nested call for the same layer fails instead
	// of running the setup twice. Rolled back if the setup fails.
	g.layers[layer] = true
	g.mu.Unlock()

	if setup != nil {
		if err := setup(); err != nil {
			g.mu.Lock()
			delete(g.layers, layer)
			g.mu.Unlock()
			return err
		}
	}
	return nil
}

// Complete seals the instance. Only the outermost setup routine calls this;
// it fails with ErrNotInitializing if no setup sequence is active and with
// ErrAlreadyInitialized if the instance is already sealed.
func (g *Guard) Complete() error {
	g.mu.Lock()
	defer g.mu.Unlock()

	switch g.phase {
	case PhaseInitialized:
		return ErrAlreadyInitialized
	case PhaseUninitialized:
		return ErrNotInitializing
	default:
		g.phase = PhaseInitialized
		return nil
	}
}
