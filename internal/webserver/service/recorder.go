package service

import (
	"crypto/md5"
	"encoding/hex"
	"encoding/json"
	"io"
	"time"

	"github.com/mdouchement/neoloadutility/internal/database"
	"github.com/mdouchement/neoloadutility/internal/model"
	"github.com/mdouchement/neoloadutility/internal/openapi"
	"github.com/mdouchement/neoloadutility/internal/storage"
	"github.com/pkg/errors"
)

// SpecsContainer is the storage container holding the generated documents.
const SpecsContainer = "specs"

// A Recorder stores a generated document and saves its conversion record.
type Recorder struct {
	database  database.Client
	storage   storage.Backend
	retention time.Duration
}

// NewRecorder returns a new Recorder.
func NewRecorder(database database.Client, storage storage.Backend, retention time.Duration) *Recorder {
	return &Recorder{
		database:  database,
		storage:   storage,
		retention: retention,
	}
}

// Record persists the document and returns the saved conversion.
func (s *Recorder) Record(kind, title string, requests int, document *openapi.Document) (*model.Conversion, error) {
	conversion := &model.Conversion{
		Kind:     kind,
		Title:    title,
		Requests: requests,
		Paths:    len(document.Paths),
	}
	if s.retention > 0 {
		conversion.TTL = time.Now().Add(s.retention)
	}

	// Save first so the record owns an ID usable as filename.
	if err := s.database.Save(conversion); err != nil {
		return nil, err
	}

	err := s.store(conversion, document)
	if err != nil {
		return nil, errors.Wrap(err, "Recorder storage")
	}

	return conversion, errors.Wrap(s.database.Save(conversion), "Recorder conversion")
}

func (s *Recorder) store(conversion *model.Conversion, document *openapi.Document) error {
	payload, err := json.Marshal(document)
	if err != nil {
		return err
	}

	wc, err := s.storage.Writer(SpecsContainer, Filename(conversion))
	if err != nil {
		return err
	}
	defer wc.Close()

	h := md5.New()
	w := io.MultiWriter(h, wc)

	n, err := w.Write(payload)
	if err != nil {
		return err
	}

	conversion.Size = int64(n)
	conversion.Checksum = hex.EncodeToString(h.Sum(nil))
	return nil
}

// Filename returns the storage object name of the conversion.
func Filename(conversion *model.Conversion) string {
	return conversion.ID + ".json"
}
