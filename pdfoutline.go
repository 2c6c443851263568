// Package pdfoutline extracts structural outlines (a title plus H1-H3
// headings) from PDF documents and ranks the extracted sections against a
// persona's task description.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency or role (e.g., sqlite/, pdf/, gemini/).
package pdfoutline
