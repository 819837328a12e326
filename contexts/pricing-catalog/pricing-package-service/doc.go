// Package pricingpackageservice contains the pricing catalog of the venue CMS:
// yearly pricing packages per segment, their immutable version history and the
// approval workflow that gates public visibility.
//
// Replacing a package file bumps its version counter, records a new version
// row and resets approval. Approval applies either to the package (and its
// current version row) or to one historical version.
package pricingpackageservice
