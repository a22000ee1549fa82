package database

import (
	"github.com/mdouchement/neoloadutility/internal/model"
)

type (
	// A Client can interacts with the database.
	Client interface {
		// Save inserts or updates the entry in database with the given model.
		Save(m model.Model) error
		// Delete deletes the entry in database with the given model.
		Delete(m model.Model) error
		// Close the database.
		Close() error
		// IsNotFound returns true if err is nil or a not found error.
		IsNotFound(err error) bool

		ConversionInteraction
	}

	// A ConversionInteraction defines all the methods used to interact with a conversion record.
	ConversionInteraction interface {
		AllConversions() ([]*model.Conversion, error)
		ListConversions() ([]*model.Conversion, error)
		FindConversion(id string) (*model.Conversion, error)
		DeleteConversion(id string) error
	}
)
