// Package models contains the GORM persistence models for billing
// configuration and computed invoices, along with converters to and from the
// domain types. Inventory snapshot entities persist directly and have no
// model here.
package models
