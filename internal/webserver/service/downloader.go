package service

import (
	"io"

	"github.com/mdouchement/neoloadutility/internal/model"
	"github.com/mdouchement/neoloadutility/internal/storage"
)

// A Downloader streams a stored document.
type Downloader struct {
	storage    storage.Backend
	conversion *model.Conversion
}

// NewDownloader returns a new Downloader.
func NewDownloader(storage storage.Backend, conversion *model.Conversion) *Downloader {
	return &Downloader{
		storage:    storage,
		conversion: conversion,
	}
}

// Stream returns a reader on the stored document.
func (s *Downloader) Stream() (io.ReadCloser, error) {
	return s.storage.Reader(SpecsContainer, Filename(s.conversion))
}

// ContentType returns the content type of the stored document.
func (s *Downloader) ContentType() string {
	return "application/json"
}

// Size returns the stored document size in bytes.
func (s *Downloader) Size() int64 {
	return s.conversion.Size
}

// Checksum returns the stored document checksum.
func (s *Downloader) Checksum() string {
	return s.conversion.Checksum
}
