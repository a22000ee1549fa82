package model

import "time"

// Conversion kinds.
const (
	KindCurl     = "curl"
	KindCurlFile = "curl_file"
	KindPostman  = "postman"
)

// A Conversion references an OpenAPI document generated by the service and
// stored on the filesystem.
type Conversion struct {
	Base `json:",inline" storm:"inline"`

	Kind  string `json:"kind"  storm:"index"`
	Title string `json:"title"`

	// Number of input requests and generated paths.
	Requests int `json:"requests"`
	Paths    int `json:"paths"`

	Size     int64     `json:"size"`
	Checksum string    `json:"checksum"`
	TTL      time.Time `json:"ttl" storm:"index"`
}
