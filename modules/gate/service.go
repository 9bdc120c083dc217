package gate

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/dmitrymomot/gatekit/pkg/delegate"
	"github.com/dmitrymomot/gatekit/pkg/initguard"
	"github.com/dmitrymomot/gatekit/pkg/roles"
	"github.com/dmitrymomot/gatekit/pkg/statuslist"
)

// RoleBlockManager members may add and remove blocklist entries. It is
// administered by the Root role.
var RoleBlockManager = roles.Named("gate.block_manager")

// CapabilityWhitelister names the delegated capability gating the allowlist.
const CapabilityWhitelister = "whitelister"

// Service composes the gating capabilities into one account-gating
// component. A Service is inert until Init runs; Init runs at most once per
// instance.
type Service struct {
	cfg     cfgState
	log     *slog.Logger
	guard   *initguard.Guard
	journal *journal

	registry    *roles.Registry
	blocklist   *statuslist.List
	allowlist   *statuslist.List
	whitelister *delegate.Slot
}

// cfgState is the frozen instance configuration.
type cfgState struct {
	owner         uuid.UUID
	blocklistName string
	whitelistName string
	journalLimit  int
}

// Option configures a Service at construction.
type Option func(*Service)

// WithLogger sets the structured logger. Defaults to slog.Default().
func WithLogger(log *slog.Logger) Option {
	return func(s *Service) {
		if log != nil {
			s.log = log
		}
	}
}

// WithStorage sets the journal storage. Defaults to an in-memory storage.
func WithStorage(st Storage) Option {
	return func(s *Service) {
		if st != nil {
			s.journal.storage = st
		}
	}
}

// New creates an uninitialized Service from cfg. Call Init exactly once
// before use.
func New(cfg Config, opts ...Option) *Service {
	s := &Service{
		cfg: cfgState{
			owner:         cfg.Owner,
			blocklistName: cfg.BlocklistName,
			whitelistName: cfg.WhitelistName,
			journalLimit:  cfg.JournalLimit,
		},
		log:     slog.Default(),
		guard:   initguard.New(),
		journal: &journal{storage: NewMemoryStorage()},
	}
	if s.cfg.blocklistName == "" {
		s.cfg.blocklistName = "blocklist"
	}
	if s.cfg.whitelistName == "" {
		s.cfg.whitelistName = "whitelist"
	}
	for _, opt := range opts {
		opt(s)
	}
	s.journal.log = s.log
	return s
}

// Init is the single external setup entry point. It runs each capability's
// setup exactly once behind the initialization guard and seals the instance.
// A second call fails with initguard.ErrAlreadyInitialized; none of the
// per-layer steps are reachable once the instance has left the Initializing
// phase.
func (s *Service) Init(ctx context.Context) error {
	if err := s.guard.Begin(); err != nil {
		return err
	}

	layers := []struct {
		name  string
		setup func() error
	}{
		{"roles", s.setupRoles},
		{"blocklist", s.setupBlocklist},
		{"whitelister", s.setupWhitelister},
		// The whitelist layer depends on the whitelister slot.
		{"whitelist", s.setupWhitelist},
	}
	for _, layer := range layers {
		if err := s.guard.Once(layer.name, layer.setup); err != nil {
			return err
		}
	}

	if err := s.guard.Complete(); err != nil {
		return err
	}

	s.log.InfoContext(ctx, "gate initialized",
		slog.String("owner", s.cfg.owner.String()),
		slog.String("blocklist", s.cfg.blocklistName),
		slog.String("whitelist", s.cfg.whitelistName),
	)
	return nil
}

// Initialized reports whether Init has completed.
func (s *Service) Initialized() bool {
	return s.guard.Initialized()
}

func (s *Service) setupRoles() error {
	s.registry = roles.NewRegistry(
		roles.WithMember(roles.Root, s.cfg.owner),
		roles.WithSink(s.roleEvent),
	)
	// Hierarchy bootstrap happens only here, inside the guarded setup; the
	// service does not re-export admin rewiring.
	s.registry.SetAdmin(RoleBlockManager, roles.Root)
	return nil
}

func (s *Service) setupBlocklist() error {
	s.blocklist = statuslist.New(s.cfg.blocklistName, statuslist.Denylist,
		roles.RoleAuthority{Registry: s.registry, Role: RoleBlockManager},
		statuslist.WithSelfService(),
		statuslist.WithSink(s.statusEvent),
	)
	return nil
}

func (s *Service) setupWhitelister() error {
	s.whitelister = delegate.New(CapabilityWhitelister, s.cfg.owner,
		delegate.WithSink(s.holderEvent),
	)
	return nil
}

func (s *Service) setupWhitelist() error {
	s.allowlist = statuslist.New(s.cfg.whitelistName, statuslist.Allowlist,
		s.whitelister,
		statuslist.WithSink(s.statusEvent),
	)
	return nil
}

func (s *Service) ready() error {
	if !s.guard.Initialized() {
		return ErrNotReady
	}
	return nil
}

// GrantRole adds account to role; the actor must hold role's admin role.
func (s *Service) GrantRole(ctx context.Context, actor uuid.UUID, role roles.ID, account uuid.UUID) error {
	if err := s.ready(); err != nil {
		return err
	}
	return s.registry.Grant(actor, role, account)
}

// RevokeRole removes account from role; the actor must hold role's admin role.
func (s *Service) RevokeRole(ctx context.Context, actor uuid.UUID, role roles.ID, account uuid.UUID) error {
	if err := s.ready(); err != nil {
		return err
	}
	return s.registry.Revoke(actor, role, account)
}

// RenounceRole removes the actor's own membership of role.
func (s *Service) RenounceRole(ctx context.Context, actor uuid.UUID, role roles.ID) error {
	if err := s.ready(); err != nil {
		return err
	}
	return s.registry.Renounce(actor, role)
}

// HasRole reports whether account is a member of role. Always false before
// Init.
func (s *Service) HasRole(role roles.ID, account uuid.UUID) bool {
	if s.ready() != nil {
		return false
	}
	return s.registry.HasRole(role, account)
}

// Block puts account on the blocklist; the actor must hold RoleBlockManager.
func (s *Service) Block(ctx context.Context, actor, account uuid.UUID) error {
	if err := s.ready(); err != nil {
		return err
	}
	return s.blocklist.Set(actor, account)
}

// Unblock removes account from the blocklist; the actor must hold
// RoleBlockManager.
func (s *Service) Unblock(ctx context.Context, actor, account uuid.UUID) error {
	if err := s.ready(); err != nil {
		return err
	}
	return s.blocklist.Clear(actor, account)
}

// SelfBlock puts the actor's own account on the blocklist without any role
// check.
func (s *Service) SelfBlock(ctx context.Context, actor uuid.UUID) error {
	if err := s.ready(); err != nil {
		return err
	}
	return s.blocklist.SelfSet(actor)
}

// IsBlocked reports whether account is on the blocklist. Always false before
// Init.
func (s *Service) IsBlocked(account uuid.UUID) bool {
	if s.ready() != nil {
		return false
	}
	return s.blocklist.Contains(account)
}

// Allow puts account on the allowlist; the actor must hold the whitelister
// capability.
func (s *Service) Allow(ctx context.Context, actor, account uuid.UUID) error {
	if err := s.ready(); err != nil {
		return err
	}
	return s.allowlist.Set(actor, account)
}

// Disallow removes account from the allowlist; the actor must hold the
// whitelister capability.
func (s *Service) Disallow(ctx context.Context, actor, account uuid.UUID) error {
	if err := s.ready(); err != nil {
		return err
	}
	return s.allowlist.Clear(actor, account)
}

// IsAllowed reports whether account is on the allowlist. Always false before
// Init.
func (s *Service) IsAllowed(account uuid.UUID) bool {
	if s.ready() != nil {
		return false
	}
	return s.allowlist.Contains(account)
}

// SetWhitelister hands the whitelister capability to holder; only the owner
// may call it.
func (s *Service) SetWhitelister(ctx context.Context, actor, holder uuid.UUID) error {
	if err := s.ready(); err != nil {
		return err
	}
	return s.whitelister.SetHolder(actor, holder)
}

// Whitelister returns the current whitelister, or uuid.Nil if the capability
// is unheld or the service is not initialized.
func (s *Service) Whitelister() uuid.UUID {
	if s.ready() != nil {
		return uuid.Nil
	}
	return s.whitelister.Holder()
}

// RequireNotBlocked is the deny-guard for protected operations: it fails
// with a statuslist.DeniedError when account is blocklisted, before the
// caller performs any side effect.
func (s *Service) RequireNotBlocked(account uuid.UUID) error {
	if err := s.ready(); err != nil {
		return err
	}
	return s.blocklist.Check(account)
}

// RequireAllowed is the allow-guard for protected operations: it fails with
// a statuslist.NotAllowedError when account is not allowlisted.
func (s *Service) RequireAllowed(account uuid.UUID) error {
	if err := s.ready(); err != nil {
		return err
	}
	return s.allowlist.Check(account)
}

// Events returns journaled component events in append order. A positive
// limit overrides the configured default.
func (s *Service) Events(ctx context.Context, limit int) ([]Entry, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = s.cfg.journalLimit
	}
	return s.journal.storage.List(ctx, limit)
}

func (s *Service) roleEvent(e roles.Event) {
	s.journal.record("roles", string(e.Action), e.Account, e.Actor, map[string]string{
		"role": e.Role.String(),
	})
}

func (s *Service) statusEvent(e statuslist.Event) {
	s.journal.record(e.List, string(e.Action), e.Account, e.Actor, nil)
}

func (s *Service) holderEvent(e delegate.Event) {
	s.journal.record(CapabilityWhitelister, "holder.changed", e.Holder, e.Actor, map[string]string{
		"capability": e.Capability,
		"previous":   e.Previous.String(),
	})
}
