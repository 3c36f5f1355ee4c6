// Package vocabulary holds the catalog of practice words: phonetic
// spelling, difficulty, category, an optional articulation tip and the
// accepted mispronunciation variants used by lenient word matching.
//
// The built-in catalog covers the color drill and the general practice
// list. A YAML file can extend or override it:
//
//	words:
//	  - text: teal
//	    phonetic: tiːl
//	    difficulty: easy
//	    category: colors
//	    tip: "Long 'ee' and a light 'l'"
package vocabulary
