package models

import (
	"github.com/motodesk/backend/internal/domain/access"
	"github.com/motodesk/backend/internal/domain/directory"
	"github.com/motodesk/backend/internal/domain/shared"
)

// OrganizationModel is the persistence model for the Organization aggregate root.
type OrganizationModel struct {
	AggregateModel
	Name string `gorm:"type:varchar(200);not null"`
}

// TableName returns the table name for GORM
func (OrganizationModel) TableName() string {
	return "organizations"
}

// ToDomain converts the persistence model to a domain Organization
func (m *OrganizationModel) ToDomain() *directory.Organization {
	return &directory.Organization{
		BaseAggregateRoot: shared.BaseAggregateRoot{
			BaseEntity: shared.BaseEntity{
				ID:        m.ID,
				CreatedAt: m.CreatedAt,
				UpdatedAt: m.UpdatedAt,
			},
			Version: m.Version,
		},
		Name: m.Name,
	}
}

// FromDomain populates the persistence model from a domain Organization
func (m *OrganizationModel) FromDomain(org *directory.Organization) {
	m.FromDomainAggregateRoot(org.BaseAggregateRoot)
	m.Name = org.Name
}

// OrganizationModelFromDomain creates a new persistence model from a domain Organization
func OrganizationModelFromDomain(org *directory.Organization) *OrganizationModel {
	m := &OrganizationModel{}
	m.FromDomain(org)
	return m
}

// ActorModel is the persistence model for the Actor aggregate root.
// The email index is global: an email identifies at most one actor across
// all organizations.
type ActorModel struct {
	OrgAggregateModel
	Email        string      `gorm:"type:varchar(254);not null;uniqueIndex"`
	DisplayName  string      `gorm:"type:varchar(200);not null"`
	PasswordHash string      `gorm:"type:varchar(100);not null"`
	Role         access.Role `gorm:"type:varchar(20);not null;index"`
}

// TableName returns the table name for GORM
func (ActorModel) TableName() string {
	return "actors"
}

// ToDomain converts the persistence model to a domain Actor
func (m *ActorModel) ToDomain() *directory.Actor {
	return &directory.Actor{
		OrgAggregateRoot: m.ToDomainOrgAggregateRoot(),
		Email:            m.Email,
		DisplayName:      m.DisplayName,
		PasswordHash:     m.PasswordHash,
		Role:             m.Role,
	}
}

// FromDomain populates the persistence model from a domain Actor
func (m *ActorModel) FromDomain(a *directory.Actor) {
	m.FromDomainOrgAggregateRoot(a.OrgAggregateRoot)
	m.Email = a.Email
	m.DisplayName = a.DisplayName
	m.PasswordHash = a.PasswordHash
	m.Role = a.Role
}

// ActorModelFromDomain creates a new persistence model from a domain Actor
func ActorModelFromDomain(a *directory.Actor) *ActorModel {
	m := &ActorModel{}
	m.FromDomain(a)
	return m
}
