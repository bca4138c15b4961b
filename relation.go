package geobin

import "strings"

// Flag is a tri-state relation answer.
type Flag int8

const (
	// Unset means the flag was not requested.
	Unset Flag = iota
	False
	True
)

func (f Flag) String() string {
	switch f {
	case False:
		return "false"
	case True:
		return "true"
	default:
		return "unset"
	}
}

// IsSet returns true when the flag was requested.
func (f Flag) IsSet() bool { return f != Unset }

// IsTrue returns true only for True.
func (f Flag) IsTrue() bool { return f == True }

// Bool returns the value of the flag and whether it was set.
func (f Flag) Bool() (value, ok bool) { return f == True, f != Unset }

func (f Flag) or(o Flag) Flag {
	if f == Unset {
		return f
	}
	if o == True {
		return True
	}
	return f
}

func (f Flag) mark() Flag {
	if f == Unset {
		return f
	}
	return True
}

// RelationRequest selects the relations a query must answer.
//
// Contains means some part of A covers some part of B. StrictContains
// means every part of B is covered by A, which only differs from Contains
// for multi-part shapes and costs a full pass over both shapes. Contained
// and StrictContained are the mirrored relations.
//
// With EarlyExit set a query returns as soon as one requested flag is
// true. Requested flags that were not evaluated yet are then reported as
// False even though they were never tested. Leave EarlyExit off to get
// exhaustive answers.
type RelationRequest struct {
	Contains        bool
	StrictContains  bool
	Contained       bool
	StrictContained bool
	Intersect       bool
	Disjoint        bool
	EarlyExit       bool
}

// AllRelations requests every relation with an exhaustive answer.
func AllRelations() RelationRequest {
	return RelationRequest{
		Contains:        true,
		StrictContains:  true,
		Contained:       true,
		StrictContained: true,
		Intersect:       true,
		Disjoint:        true,
	}
}

// AnyRelation requests every relation and stops at the first hit.
func AnyRelation() RelationRequest {
	req := AllRelations()
	req.EarlyExit = true
	return req
}

// Swap exchanges the contains and contained flags.
func (r RelationRequest) Swap() RelationRequest {
	r.Contains, r.Contained = r.Contained, r.Contains
	r.StrictContains, r.StrictContained = r.StrictContained, r.StrictContains
	return r
}

// StripStrict clears both strict flags.
func (r RelationRequest) StripStrict() RelationRequest {
	r.StrictContains = false
	r.StrictContained = false
	return r
}

// StripStrictContained clears the strict contained flag.
func (r RelationRequest) StripStrictContained() RelationRequest {
	r.StrictContained = false
	return r
}

// StripDisjoint clears the disjoint flag.
func (r RelationRequest) StripDisjoint() RelationRequest {
	r.Disjoint = false
	return r
}

// AllFalse returns a result with every requested flag set to False and
// every other flag left Unset.
func (r RelationRequest) AllFalse() RelationResult {
	var out RelationResult
	seed := func(requested bool) Flag {
		if requested {
			return False
		}
		return Unset
	}
	out.Contains = seed(r.Contains)
	out.StrictContains = seed(r.StrictContains)
	out.Contained = seed(r.Contained)
	out.StrictContained = seed(r.StrictContained)
	out.Intersect = seed(r.Intersect)
	out.Disjoint = seed(r.Disjoint)
	return out
}

// probe is the request sent to the parts of a composite shape. Strict
// flags are derived by the composite itself, and disjointness is only
// known once every other relation came back negative.
func (r RelationRequest) probe() RelationRequest {
	p := r.StripStrict().StripDisjoint()
	p.Contains = r.Contains || r.StrictContains
	p.Contained = r.Contained || r.StrictContained
	if r.Disjoint {
		p.Contains, p.Contained, p.Intersect = true, true, true
	}
	return p
}

// RelationResult holds the answer to a RelationRequest.
type RelationResult struct {
	Contains        Flag
	StrictContains  Flag
	Contained       Flag
	StrictContained Flag
	Intersect       Flag
	Disjoint        Flag
}

// Or merges other into the result. Flags unset in the result stay unset.
func (r RelationResult) Or(other RelationResult) RelationResult {
	r.Contains = r.Contains.or(other.Contains)
	r.StrictContains = r.StrictContains.or(other.StrictContains)
	r.Contained = r.Contained.or(other.Contained)
	r.StrictContained = r.StrictContained.or(other.StrictContained)
	r.Intersect = r.Intersect.or(other.Intersect)
	r.Disjoint = r.Disjoint.or(other.Disjoint)
	return r
}

// Swap exchanges the contains and contained flags.
func (r RelationResult) Swap() RelationResult {
	r.Contains, r.Contained = r.Contained, r.Contains
	r.StrictContains, r.StrictContained = r.StrictContained, r.StrictContains
	return r
}

// AnyRelation returns true when the shapes are not disjoint and at least
// one other flag is true.
func (r RelationResult) AnyRelation() bool {
	if r.Disjoint.IsTrue() {
		return false
	}
	return r.Contains.IsTrue() || r.StrictContains.IsTrue() ||
		r.Contained.IsTrue() || r.StrictContained.IsTrue() ||
		r.Intersect.IsTrue()
}

func (r RelationResult) String() string {
	var sb strings.Builder
	sb.WriteString("{contains:")
	sb.WriteString(r.Contains.String())
	sb.WriteString(" strictContains:")
	sb.WriteString(r.StrictContains.String())
	sb.WriteString(" contained:")
	sb.WriteString(r.Contained.String())
	sb.WriteString(" strictContained:")
	sb.WriteString(r.StrictContained.String())
	sb.WriteString(" intersect:")
	sb.WriteString(r.Intersect.String())
	sb.WriteString(" disjoint:")
	sb.WriteString(r.Disjoint.String())
	sb.WriteString("}")
	return sb.String()
}

func (r RelationResult) markContains() RelationResult {
	r.Contains = r.Contains.mark()
	return r
}

// markStrictContains also marks contains.
func (r RelationResult) markStrictContains() RelationResult {
	r.StrictContains = r.StrictContains.mark()
	return r.markContains()
}

func (r RelationResult) markContained() RelationResult {
	r.Contained = r.Contained.mark()
	return r
}

// markStrictContained also marks contained.
func (r RelationResult) markStrictContained() RelationResult {
	r.StrictContained = r.StrictContained.mark()
	return r.markContained()
}

func (r RelationResult) markIntersect() RelationResult {
	r.Intersect = r.Intersect.mark()
	return r
}

func (r RelationResult) markDisjoint() RelationResult {
	r.Disjoint = r.Disjoint.mark()
	return r
}

// settled reports whether an early exit query can stop: a requested flag
// turned true, or disjointness was requested and is already disproved.
func settled(req RelationRequest, out RelationResult, related bool) bool {
	return req.EarlyExit && (out.AnyRelation() || req.Disjoint && related)
}

// partRelation relates part i of shape A to part j of shape B.
type partRelation func(i, j int, req RelationRequest) RelationResult

// relateParts relates a shape made of n parts to a shape made of m parts.
// boundsDisjoint is the bounding box pre-check of the caller.
func relateParts(boundsDisjoint bool, n, m int, req RelationRequest, rel partRelation) RelationResult {
	out := req.AllFalse()
	if n == 0 || m == 0 || boundsDisjoint {
		return out.markDisjoint()
	}
	probe := req.probe()
	related := false
	containedParts := 0
	for i := 0; i < n; i++ {
		partContained := false
		for j := 0; j < m; j++ {
			r := rel(i, j, probe)
			out = out.Or(r)
			if r.Contained.IsTrue() {
				partContained = true
			}
			if r.AnyRelation() {
				related = true
			}
			if settled(req, out, related) {
				return out
			}
		}
		if partContained {
			containedParts++
		}
	}
	if containedParts == n {
		out = out.markStrictContained()
	}
	if req.StrictContains && related && coversAll(n, m, rel) {
		out = out.markStrictContains()
	}
	if !related {
		out = out.markDisjoint()
	}
	return out
}

// coversAll returns true when every part of B is contained by a part of A.
func coversAll(n, m int, rel partRelation) bool {
	req := RelationRequest{Contains: true, EarlyExit: true}
	for j := 0; j < m; j++ {
		covered := false
		for i := 0; i < n && !covered; i++ {
			covered = rel(i, j, req).Contains.IsTrue()
		}
		if !covered {
			return false
		}
	}
	return true
}
