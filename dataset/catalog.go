package dataset

import (
	"path/filepath"
)

type Entry struct {
	Name string
	File string
	Kind Kind
}

// Catalog lists the volume datasets the benchmarks were run against
var Catalog = []Entry{
	{Name: "aneurism", File: "aneurism_256x256x256_uint8.raw", Kind: Uint8},
	{Name: "bonsai", File: "bonsai_256x256x256_uint8.raw", Kind: Uint8},
	{Name: "pancreas", File: "pancreas_240x512x512_int16.raw", Kind: Int16},
	{Name: "vertebra", File: "vertebra_512x512x512_uint16.raw", Kind: Uint16},
	{Name: "magnetic_reconnection", File: "magnetic_reconnection_512x512x512_float32.raw", Kind: Float32},
}

// Lookup finds a catalog entry by name
func Lookup(name string) (Entry, bool) {
	for _, e := range Catalog {
		if e.Name == name {
			return e, true
		}
	}
	return Entry{}, false
}

// Path is where the entry lives under dir
func (e Entry) Path(dir string) string { return filepath.Join(dir, e.File) }
