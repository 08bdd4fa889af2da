package profile

import (
	"io"
	"os"
	"path/filepath"
	"reflect"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/masterymap/pkg/errors"
)

// header is decoded first to find the profile a file extends.
type header struct {
	Extends string `toml:"extends"`
}

// Load reads a profile from a TOML file. See [Decode] for the format.
// When the file does not set a name, the file's base name is used.
func Load(path string) (*Profile, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeProfileNotFound, err, "profile file %s", path)
		}
		return nil, err
	}
	defer f.Close()

	p, err := Decode(f)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidProfile, err, "load %s", path)
	}
	if p.Name == "" {
		p.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

// Decode parses a TOML profile.
//
// A profile may name a built-in profile to extend; keys it sets override the
// base and everything else is inherited:
//
//	extends = "classic"
//	title   = "Spring diagnostic - Sam"
//	output  = "sam.png"
//
//	[mastery]
//	exp = 4
//	log = 3
//
// Without extends, the file must be complete: labels, theme fills, topics,
// mastery and edges. Legend texts left unset take the English defaults.
func Decode(r io.Reader) (*Profile, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	var h header
	if err := toml.Unmarshal(data, &h); err != nil {
		return nil, err
	}

	var over Profile
	md, err := toml.Decode(string(data), &over)
	if err != nil {
		return nil, err
	}
	var unknown []string
	for _, k := range md.Undecoded() {
		if k.String() != "extends" {
			unknown = append(unknown, k.String())
		}
	}
	if len(unknown) > 0 {
		return nil, errors.New(errors.ErrCodeInvalidProfile, "unknown keys: %s", strings.Join(unknown, ", "))
	}

	if h.Extends == "" {
		if over.Shape == "" {
			over.Shape = ShapeBox
		}
		if over.LabelMode == "" {
			over.LabelMode = LabelName
		}
		if over.Legend {
			over.LegendText.fillFrom(defaultLegendText)
			if over.Theme.ExampleFill == "" {
				over.Theme.ExampleFill = defaultExampleFill
			}
		}
		return &over, nil
	}

	base, err := Builtin(h.Extends)
	if err != nil {
		return nil, err
	}
	base.Name = ""
	overlay(reflect.ValueOf(base).Elem(), reflect.ValueOf(&over).Elem(), md, nil)
	return base, nil
}

// overlay copies every field of src whose key is defined in the document
// onto dst. Tables are merged key by key; arrays replace the base value.
func overlay(dst, src reflect.Value, md toml.MetaData, path []string) {
	t := dst.Type()
	for i := 0; i < t.NumField(); i++ {
		tag := t.Field(i).Tag.Get("toml")
		if tag == "" || tag == "-" {
			continue
		}
		key := append(slices.Clone(path), tag)
		if !md.IsDefined(key...) {
			continue
		}
		df, sf := dst.Field(i), src.Field(i)
		switch df.Kind() {
		case reflect.Struct:
			overlay(df, sf, md, key)
		case reflect.Map:
			if df.IsNil() {
				df.Set(reflect.MakeMap(df.Type()))
			}
			iter := sf.MapRange()
			for iter.Next() {
				df.SetMapIndex(iter.Key(), iter.Value())
			}
		default:
			df.Set(sf)
		}
	}
}

// Encode writes p as TOML, suitable for editing and loading back with Load.
func Encode(w io.Writer, p *Profile) error {
	return toml.NewEncoder(w).Encode(p)
}
