package postman

import "encoding/json"

type (
	// A Collection is a Postman v2 collection export.
	Collection struct {
		Info  Info   `json:"info"`
		Items []Item `json:"item"`
	}

	// An Info holds the collection metadata.
	Info struct {
		Name    string `json:"name"`
		Version string `json:"version"`
	}

	// An Item is a single saved request of the collection.
	Item struct {
		Name    string   `json:"name"`
		Request *Request `json:"request"`
	}

	// A Request describes the HTTP request of an item.
	Request struct {
		Method  string   `json:"method"`
		URL     URL      `json:"url"`
		Headers []Header `json:"header"`
		Body    *Body    `json:"body"`
	}

	// A URL is either a plain string or a structured Postman URL.
	URL struct {
		Raw   string
		Path  []string
		Query []Query
	}

	// A Query is a query string entry of a structured URL.
	Query struct {
		Key      string `json:"key"`
		Value    string `json:"value"`
		Disabled bool   `json:"disabled"`
	}

	// A Header is a request header entry.
	Header struct {
		Key   string `json:"key"`
		Value string `json:"value"`
	}

	// A Body is the payload of a request. Only the raw mode is handled.
	Body struct {
		Mode string `json:"mode"`
		Raw  string `json:"raw"`
	}
)

// UnmarshalJSON accepts both the string and the object form of a URL.
func (u *URL) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err == nil {
		u.Raw = raw
		return nil
	}

	var structured struct {
		Raw   string   `json:"raw"`
		Path  []string `json:"path"`
		Query []Query  `json:"query"`
	}
	if err := json.Unmarshal(data, &structured); err != nil {
		return err
	}

	u.Raw = structured.Raw
	u.Path = structured.Path
	u.Query = structured.Query
	return nil
}
