// Package pagelens reviews landing pages with a large language model.
// It fetches a page, reduces it to the visible text, asks the model for a
// UI or UX critique and turns the answer into display blocks.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., goquery/, gemini/, goldmark/).
package pagelens
