package service

import (
	"github.com/mdouchement/neoloadutility/internal/database"
	"github.com/mdouchement/neoloadutility/internal/model"
	"github.com/mdouchement/neoloadutility/internal/storage"
	"github.com/pkg/errors"
)

// A Destroyer removes a conversion and its stored document.
type Destroyer struct {
	database   database.Client
	storage    storage.Backend
	conversion *model.Conversion
}

// NewDestroyer returns a new Destroyer.
func NewDestroyer(database database.Client, storage storage.Backend, conversion *model.Conversion) *Destroyer {
	return &Destroyer{
		database:   database,
		storage:    storage,
		conversion: conversion,
	}
}

// Destroy removes the stored document then the record.
func (s *Destroyer) Destroy() error {
	err := s.storage.Remove(SpecsContainer, Filename(s.conversion))
	if err != nil {
		return errors.Wrap(err, "Destroyer storage")
	}

	err = s.database.DeleteConversion(s.conversion.ID)
	return errors.Wrap(err, "Destroyer conversion")
}
