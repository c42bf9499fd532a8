package entities

import (
	"bytes"
	"encoding/json"
)

// Dockerfiles maps Dockerfile paths to their base images, keeping the order
// in which paths were added.
type Dockerfiles struct {
	paths  []string
	images map[string][]string
}

// NewDockerfiles creates an empty mapping.
func NewDockerfiles() *Dockerfiles {
	return &Dockerfiles{images: make(map[string][]string)}
}

// Add records the images of a Dockerfile. Adding an existing path replaces its
// images and keeps its position.
func (d *Dockerfiles) Add(path string, images []string) {
	if images == nil {
		images = []string{}
	}
	if _, ok := d.images[path]; !ok {
		d.paths = append(d.paths, path)
	}
	d.images[path] = images
}

// Paths returns the Dockerfile paths in insertion order.
func (d *Dockerfiles) Paths() []string {
	return append([]string(nil), d.paths...)
}

// Images returns the images recorded for path.
func (d *Dockerfiles) Images(path string) ([]string, bool) {
	images, ok := d.images[path]
	return images, ok
}

// Len returns the number of Dockerfiles.
func (d *Dockerfiles) Len() int {
	return len(d.paths)
}

// MarshalJSON renders the mapping as a JSON object in insertion order.
func (d *Dockerfiles) MarshalJSON() ([]byte, error) {
	return marshalOrdered(d.paths, func(path string) any { return d.images[path] })
}

// Report is the aggregated scan result, keyed by "<repo_url>:<commit>" in
// the order the lines were read.
type Report struct {
	keys    []string
	entries map[string]*Dockerfiles
}

// NewReport creates an empty report.
func NewReport() *Report {
	return &Report{entries: make(map[string]*Dockerfiles)}
}

// Set stores the Dockerfiles of one repository. Setting an existing key
// replaces its value and keeps its position.
func (r *Report) Set(key string, dockerfiles *Dockerfiles) {
	if dockerfiles == nil {
		dockerfiles = NewDockerfiles()
	}
	if _, ok := r.entries[key]; !ok {
		r.keys = append(r.keys, key)
	}
	r.entries[key] = dockerfiles
}

// Get returns the Dockerfiles stored under key.
func (r *Report) Get(key string) (*Dockerfiles, bool) {
	dockerfiles, ok := r.entries[key]
	return dockerfiles, ok
}

// Keys returns the report keys in insertion order.
func (r *Report) Keys() []string {
	return append([]string(nil), r.keys...)
}

// Len returns the number of repositories in the report.
func (r *Report) Len() int {
	return len(r.keys)
}

// MarshalJSON renders the report as a JSON object in insertion order.
func (r *Report) MarshalJSON() ([]byte, error) {
	return marshalOrdered(r.keys, func(key string) any { return r.entries[key] })
}

// Output is the document printed by the scanner.
type Output struct {
	Data *Report `json:"data"`
}

// Render returns the output as JSON indented with two spaces.
func (o Output) Render() ([]byte, error) {
	if o.Data == nil {
		o.Data = NewReport()
	}
	return json.MarshalIndent(o, "", "  ")
}

func marshalOrdered(keys []string, value func(string) any) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, key := range keys {
		if i > 0 {
			buf.WriteByte(',')
		}

		encodedKey, err := json.Marshal(key)
		if err != nil {
			return nil, err
		}
		buf.Write(encodedKey)
		buf.WriteByte(':')

		encodedValue, err := json.Marshal(value(key))
		if err != nil {
			return nil, err
		}
		buf.Write(encodedValue)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
