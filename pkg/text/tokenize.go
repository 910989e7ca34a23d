package text

import (
	"strings"
)

type void struct{}

var Void = void{}

// Set holds unique tokens.
type Set map[string]void

func NewSet(values ...string) Set {
	set := Set{}
	for _, val := range values {
		set[val] = Void
	}
	return set
}

func (s Set) Contains(token string) bool {
	_, ok := s[token]
	return ok
}

// Tokenize lowercases s and splits it on whitespace.
func Tokenize(s string) []string {
	return strings.Fields(strings.ToLower(s))
}

// Unique returns the distinct tokens that are not in stops.
func Unique(tokens []string, stops Set) Set {
	set := make(Set, len(tokens))
	for _, token := range tokens {
		if stops.Contains(token) {
			continue
		}
		set[token] = Void
	}
	return set
}

// Bag is a multiset of tokens. Keys keeps the order in which tokens were first seen.
type Bag struct {
	Counts map[string]int
	Keys   []string
}

// Count builds a Bag of the tokens that are not in stops.
func Count(tokens []string, stops Set) Bag {
	bag := Bag{Counts: make(map[string]int, len(tokens))}
	for _, token := range tokens {
		if stops.Contains(token) {
			continue
		}
		if _, seen := bag.Counts[token]; !seen {
			bag.Keys = append(bag.Keys, token)
		}
		bag.Counts[token]++
	}
	return bag
}

func (b Bag) Contains(token string) bool {
	_, ok := b.Counts[token]
	return ok
}

// Total returns the number of tokens in the bag, multiplicity included.
func (b Bag) Total() int {
	total := 0
	for _, c := range b.Counts {
		total += c
	}
	return total
}
