// Package language resolves the spoken language of a video from caption tracks,
// declared metadata and title text.
//
// Every function here is pure. Given the same signals the same code comes back,
// including on ties, which resolve to "no detection" rather than to an arbitrary pick.
package language
