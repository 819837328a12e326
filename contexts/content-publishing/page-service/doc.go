// Package pageservice publishes CMS pages, their gallery media and the
// public navigation built from them.
package pageservice
