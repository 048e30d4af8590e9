// Package models holds the GORM persistence models of the ledger tables.
// Domain types stay free of ORM tags; repositories convert between the two
// with the ToDomain and FromDomain helpers defined next to each model.
package models
