package database

import (
	"time"

	"github.com/asdine/storm/v3"
	"github.com/asdine/storm/v3/codec/json"
	"github.com/asdine/storm/v3/q"
	"github.com/gofrs/uuid"
	"github.com/mdouchement/neoloadutility/internal/model"
	"github.com/pkg/errors"
)

type strm struct {
	db *storm.DB
}

// StormCodec is the format used to store data in the database.
var StormCodec = storm.Codec(json.Codec)

// StormInit initializes Storm database.
func StormInit(database string) error {
	db, err := storm.Open(database, StormCodec)
	if err != nil {
		return errors.Wrap(err, "could not get database connection")
	}
	defer db.Close()

	err = db.Init(&model.Conversion{})
	return errors.Wrap(err, "could not init conversion index")
}

// StormReIndex reindexes Storm database.
func StormReIndex(database string) error {
	db, err := storm.Open(database, StormCodec)
	if err != nil {
		return errors.Wrap(err, "could not get database connection")
	}
	defer db.Close()

	err = db.ReIndex(&model.Conversion{})
	return errors.Wrap(err, "could not ReIndex conversions")
}

// StormOpen opens the database and returns the client.
func StormOpen(database string) (Client, error) {
	db, err := storm.Open(database, StormCodec)
	if err != nil {
		return nil, errors.Wrap(err, "could not get database connection")
	}

	return &strm{
		db: db,
	}, nil
}

func (c *strm) Save(m model.Model) error {
	t := time.Now().UTC()
	m.SetUpdatedAt(t)

	if m.GetID() == "" {
		m.SetID(uuid.Must(uuid.NewV4()).String())
		m.SetCreatedAt(t)
	}

	return errors.Wrap(c.db.Save(m), "could not save the model")
}

func (c *strm) Delete(m model.Model) error {
	return errors.Wrap(c.db.DeleteStruct(m), "could not delete the model")
}

func (c *strm) Close() error {
	return c.db.Close()
}

func (c *strm) IsNotFound(err error) bool {
	return errors.Cause(err) == storm.ErrNotFound
}

//
// Conversion
//

func (c *strm) AllConversions() ([]*model.Conversion, error) {
	conversions := make([]*model.Conversion, 0)
	err := c.db.All(&conversions)
	return conversions, errors.Wrap(err, "could not get all conversions")
}

func (c *strm) ListConversions() ([]*model.Conversion, error) {
	conversions := make([]*model.Conversion, 0)
	err := c.db.Select(q.True()).OrderBy("CreatedAt").Reverse().Find(&conversions)
	if c.IsNotFound(err) {
		return conversions, nil
	}
	return conversions, errors.Wrap(err, "could not list conversions")
}

func (c *strm) FindConversion(id string) (*model.Conversion, error) {
	var conversion model.Conversion
	err := c.db.One("ID", id, &conversion)
	return &conversion, errors.Wrap(err, "could not find conversion")
}

func (c *strm) DeleteConversion(id string) error {
	err := c.db.Select(q.Eq("ID", id)).Delete(&model.Conversion{})
	return errors.Wrap(err, "could not delete conversion")
}
