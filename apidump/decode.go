package apidump

import (
	"encoding/json"
	"io"

	"github.com/BurntSushi/toml"

	"github.com/teranos/rbxtypes/errors"
)

// DecodeDump parses an API dump document
func DecodeDump(r io.Reader) (*Dump, error) {
	var dump Dump
	if err := json.NewDecoder(r).Decode(&dump); err != nil {
		return nil, errors.Wrap(err, "failed to decode API dump")
	}
	if dump.Classes == nil {
		return nil, errors.WithHint(errors.New("API dump has no Classes array"),
			"sources.api_dump should point at API-Dump.json")
	}
	return &dump, nil
}

// DecodeCorrections parses a corrections document in JSON
func DecodeCorrections(r io.Reader) (*Corrections, error) {
	var corrections Corrections
	if err := json.NewDecoder(r).Decode(&corrections); err != nil {
		return nil, errors.Wrap(err, "failed to decode corrections")
	}
	return &corrections, nil
}

// DecodeCorrectionsTOML parses a hand-written corrections overlay in TOML:
//
//	[[Classes]]
//	Name = "BasePart"
//
//	  [[Classes.Members]]
//	  Name = "Touched"
//
//	    [[Classes.Members.Parameters]]
//	    Name = "otherPart"
//	    Type = { Name = "BasePart" }
func DecodeCorrectionsTOML(r io.Reader) (*Corrections, error) {
	var corrections Corrections
	md, err := toml.NewDecoder(r).Decode(&corrections)
	if err != nil {
		return nil, errors.Wrap(err, "failed to decode TOML corrections")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, errors.Newf("unknown keys in TOML corrections: %v", undecoded)
	}
	return &corrections, nil
}
