package directory

import (
	"regexp"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/motodesk/backend/internal/domain/access"
	"github.com/motodesk/backend/internal/domain/shared"
)

// Password cost for bcrypt
const bcryptCost = 12

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// Actor is an identity with a role inside one organization. The aggregate
// enforces field-level rules; the organization-wide invariant (at least one
// full-access actor) is enforced by the directory service, which sees the
// whole actor set.
type Actor struct {
	shared.OrgAggregateRoot
	Email        string
	DisplayName  string
	PasswordHash string
	Role         access.Role
}

// NewActor creates an actor with the given role. Email is unique across all
// organizations; uniqueness is checked by the directory service against the
// store.
func NewActor(orgID uuid.UUID, email, displayName, password string, role access.Role) (*Actor, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if err := validateEmail(email); err != nil {
		return nil, err
	}
	if strings.TrimSpace(displayName) == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Display name cannot be empty")
	}
	if len(displayName) > 200 {
		return nil, shared.NewDomainError("INVALID_INPUT", "Display name cannot exceed 200 characters")
	}
	if err := validatePassword(password); err != nil {
		return nil, err
	}
	if !role.IsValid() {
		return nil, shared.NewDomainError("INVALID_INPUT", "Role is not valid")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return nil, shared.NewDomainError("PASSWORD_HASH_ERROR", "Failed to hash password")
	}

	actor := &Actor{
		OrgAggregateRoot: shared.NewOrgAggregateRoot(orgID),
		Email:            email,
		DisplayName:      strings.TrimSpace(displayName),
		PasswordHash:     string(hash),
		Role:             role,
	}

	actor.AddDomainEvent(NewActorInvitedEvent(actor))

	return actor, nil
}

// VerifyPassword checks a plaintext password against the stored hash
func (a *Actor) VerifyPassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(a.PasswordHash), []byte(password)) == nil
}

// ChangeRole assigns a new role. The caller (directory service) must have
// verified that the change leaves at least one full-access actor in the org.
func (a *Actor) ChangeRole(role access.Role) error {
	if !role.IsValid() {
		return shared.NewDomainError("INVALID_INPUT", "Role is not valid")
	}

	previous := a.Role
	a.Role = role
	a.Touch()
	a.IncrementVersion()

	a.AddDomainEvent(NewActorRoleChangedEvent(a, previous))

	return nil
}

// SetDisplayName updates the actor's display name
func (a *Actor) SetDisplayName(displayName string) error {
	displayName = strings.TrimSpace(displayName)
	if displayName == "" {
		return shared.NewDomainError("INVALID_INPUT", "Display name cannot be empty")
	}
	if len(displayName) > 200 {
		return shared.NewDomainError("INVALID_INPUT", "Display name cannot exceed 200 characters")
	}

	a.DisplayName = displayName
	a.Touch()
	a.IncrementVersion()

	return nil
}

// HasFullAccess returns true for full-access actors
func (a *Actor) HasFullAccess() bool {
	return a.Role == access.RoleFullAccess
}

func validateEmail(email string) error {
	if email == "" {
		return shared.NewDomainError("INVALID_EMAIL", "Email cannot be empty")
	}
	if len(email) > 254 || !emailPattern.MatchString(email) {
		return shared.NewDomainError("INVALID_EMAIL", "Email format is not valid")
	}
	return nil
}

func validatePassword(password string) error {
	if len(password) < 8 {
		return shared.NewDomainError("INVALID_PASSWORD", "Password must be at least 8 characters")
	}
	if len(password) > 128 {
		return shared.NewDomainError("INVALID_PASSWORD", "Password cannot exceed 128 characters")
	}
	return nil
}
