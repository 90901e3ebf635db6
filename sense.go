// Copyright 2019 Google LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package rpmpack

import (
	"fmt"
	"regexp"

	"github.com/rpmkit/rpmheader/header"
	"github.com/rpmkit/rpmheader/rpmtag"
)

type rpmSense uint32

// SenseAny specifies no specific version compare
// SenseLess specifies less then the specified version
// SenseGreater specifies greater then the specified version
// SenseEqual specifies equal to the specified version
const (
	SenseAny  rpmSense = 0
	SenseLess rpmSense = 1 << iota
	SenseGreater
	SenseEqual
)

type relationCategory string

const (
	RequiresCategory   relationCategory = "requires"
	ObsoletesCategory  relationCategory = "obsoletes"
	SuggestsCategory   relationCategory = "suggests"
	RecommendsCategory relationCategory = "recommends"
	ConflictsCategory  relationCategory = "conflicts"
	ProvidesCategory   relationCategory = "provides"
)

var relationMatch = regexp.MustCompile(`([^=<>\s]*)\s*((?:=|>|<|>=|<=)*)\s*(.*)?`)

// Relation is the structure of rpm sense relationships.
type Relation struct {
	Name    string
	Version string
	Sense   rpmSense
}

// String returns the string representation of the Relation.
func (r *Relation) String() string {
	return fmt.Sprintf("%s%v%s", r.Name, r.Sense, r.Version)
}

// GoString returns the string representation of the Relation.
func (r *Relation) GoString() string {
	return r.String()
}

// Equal compares the equality of two relations.
func (r *Relation) Equal(o *Relation) bool {
	return r.String() == o.String()
}

// Relations is a slice of Relation pointers.
type Relations []*Relation

// String returns the string representation of the Relations.
func (r *Relations) String() string {
	var val string
	total := len(*r)
	for idx, relation := range *r {
		val += fmt.Sprintf("%s%v%s", relation.Name, relation.Sense, relation.Version)
		if idx < total-1 {
			val += ","
		}
	}
	return val
}

// GoString returns the string representation of the Relations.
func (r *Relations) GoString() string {
	return r.String()
}

// Set parses a string into a Relation and appends it to the Relations slice
// if it is missing. This is what makes Relations usable as a flag.Value.
func (r *Relations) Set(value string) error {
	relation, err := NewRelation(value)
	if err != nil {
		return err
	}
	r.addIfMissing(relation)
	return nil
}

func (r *Relations) addIfMissing(value *Relation) {
	for _, relation := range *r {
		if relation.Equal(value) {
			return
		}
	}
	*r = append(*r, value)
}

// entries returns the name/version/flags index entries for the given
// category, or nil if there is nothing to add.
func (r Relations) entries(category relationCategory) ([]header.IndexEntry[rpmtag.IndexTag], error) {
	num := len(r)
	if num == 0 {
		return nil, nil
	}

	var nameTag, versionTag, flagsTag rpmtag.IndexTag
	switch category {
	case ProvidesCategory:
		nameTag, versionTag, flagsTag = rpmtag.ProvideName, rpmtag.ProvideVersion, rpmtag.ProvideFlags
	case RequiresCategory:
		nameTag, versionTag, flagsTag = rpmtag.RequireName, rpmtag.RequireVersion, rpmtag.RequireFlags
	case ObsoletesCategory:
		nameTag, versionTag, flagsTag = rpmtag.ObsoleteName, rpmtag.ObsoleteVersion, rpmtag.ObsoleteFlags
	case SuggestsCategory:
		nameTag, versionTag, flagsTag = rpmtag.SuggestName, rpmtag.SuggestVersion, rpmtag.SuggestFlags
	case RecommendsCategory:
		nameTag, versionTag, flagsTag = rpmtag.RecommendName, rpmtag.RecommendVersion, rpmtag.RecommendFlags
	case ConflictsCategory:
		nameTag, versionTag, flagsTag = rpmtag.ConflictName, rpmtag.ConflictVersion, rpmtag.ConflictFlags
	default:
		return nil, fmt.Errorf("unknown relation category %q", category)
	}

	names := make([]string, num)
	versions := make([]string, num)
	flags := make([]int32, num)
	for idx, relation := range r {
		names[idx] = relation.Name
		versions[idx] = relation.Version
		flags[idx] = int32(relation.Sense)
	}

	return []header.IndexEntry[rpmtag.IndexTag]{
		header.NewIndexEntry[rpmtag.IndexTag](nameTag, 0, header.StringArrayData(names)),
		header.NewIndexEntry[rpmtag.IndexTag](versionTag, 0, header.StringArrayData(versions)),
		header.NewIndexEntry[rpmtag.IndexTag](flagsTag, 0, header.Int32Data(flags)),
	}, nil
}

// NewRelation parses a string into a Relation, e.g. "python >= 3.7".
func NewRelation(related string) (*Relation, error) {
	parts := relationMatch.FindStringSubmatch(related)
	if parts == nil {
		return nil, fmt.Errorf("%q is not a valid relation", related)
	}
	sense, err := parseSense(parts[2])
	if err != nil {
		return nil, err
	}
	return &Relation{
		Name:    parts[1],
		Version: parts[3],
		Sense:   sense,
	}, nil
}

var senseStrings = map[rpmSense]string{
	SenseAny:                  "",
	SenseLess:                 "<",
	SenseGreater:              ">",
	SenseEqual:                "=",
	SenseLess | SenseEqual:    "<=",
	SenseGreater | SenseEqual: ">=",
}

// String returns the string representation of the rpmSense.
func (r rpmSense) String() string {
	if ret, ok := senseStrings[r]; ok {
		return ret
	}
	return "UNKNOWN"
}

// GoString returns the string representation of the rpmSense.
func (r rpmSense) GoString() string {
	return r.String()
}

func parseSense(sense string) (rpmSense, error) {
	for ret, toMatch := range senseStrings {
		if sense == toMatch {
			return ret, nil
		}
	}
	return 0, fmt.Errorf("unknown sense value %q", sense)
}
