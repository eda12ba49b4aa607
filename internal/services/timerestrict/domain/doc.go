// Package domain holds the weekly restriction schedule model and the pure
// evaluation rules: whether access is restricted at a given instant, how the
// denial message is rendered, and who is exempt.
//
// Nothing here performs I/O or keeps state; callers pass the current time
// and a Schedule value explicitly.
package domain
